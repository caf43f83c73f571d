// File: internal/agent/prompts.go
package agent

// initialObservation seeds the narrative memory before the first cycle.
const initialObservation = "System started. Capable of: clicking, dragging, typing, pressing keys, " +
	"executing Python code, waiting. Monitoring screen for tasks or instructions."

// planPrompt is the system prompt for the planning call. The command grammar
// described here must stay in sync with protocol.Parse.
const planPrompt = `You are operating a computer. Look at the screen and output commands.

Commands:
CLICK x y - Click at position (x and y are 0-1000, where 0 is left/top, 1000 is right/bottom)
DRAG x1 y1 x2 y2 - Drag from position 1 to position 2
TYPE text - Type text
KEY name - Press key (windows, enter, escape, tab, backspace, delete)
PYTHON_EXECUTE code - Execute Python code (single line, math/logic only)
WAIT milliseconds - Pause

Output one command per line. No explanations.

PYTHON_EXECUTE examples:
PYTHON_EXECUTE result = 2 * 6
PYTHON_EXECUTE values = [2*x for x in [1,2,3,4]]
PYTHON_EXECUTE answer = sum([1,2,3,4,5])

Execute tasks one step at a time.
If no task visible, output: WAIT 1000`

// reflectPrompt is the system prompt for the reflection call that rewrites
// the observation after each batch of commands.
const reflectPrompt = `You see the screen after commands executed.

Previous observation: [see below]
Commands executed: [see below]
Execution results: [see below]
Current screen: [see image]

Write observation (50-100 words):
1. Commands executed
2. What you see now
3. What changed from previous observation
4. Next step, or "No active task - monitoring screen"

Be factual. Describe what changed.`
