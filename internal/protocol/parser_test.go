// File: internal/protocol/parser_test.go
package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\n\n   \n"))
}

func TestParse_Ordering(t *testing.T) {
	commands := Parse("CLICK 500 500\nKEY enter")
	require.Len(t, commands, 2)
	assert.Equal(t, Click{X: 500, Y: 500}, commands[0])
	assert.Equal(t, KeyPress{Name: "enter"}, commands[1])
}

func TestParse_Kinds(t *testing.T) {
	t.Run("Click", func(t *testing.T) {
		assert.Equal(t, []Command{Click{X: 250, Y: 800}}, Parse("CLICK 250 800"))
	})

	t.Run("ClickTruncatesFloats", func(t *testing.T) {
		assert.Equal(t, []Command{Click{X: 500, Y: 499}}, Parse("CLICK 500.9 499.2"))
	})

	t.Run("Drag", func(t *testing.T) {
		assert.Equal(t, []Command{Drag{X1: 1, Y1: 2, X2: 3, Y2: 4}}, Parse("DRAG 1 2 3 4"))
	})

	t.Run("Type", func(t *testing.T) {
		assert.Equal(t, []Command{TypeText{Text: "hello world"}}, Parse("TYPE hello world"))
	})

	t.Run("TypeEmptyRemainder", func(t *testing.T) {
		assert.Equal(t, []Command{TypeText{Text: ""}}, Parse("TYPE"))
	})

	t.Run("KeyLowercasesFirstToken", func(t *testing.T) {
		assert.Equal(t, []Command{KeyPress{Name: "enter"}}, Parse("KEY ENTER ignored"))
	})

	t.Run("PythonExecuteTakesRemainder", func(t *testing.T) {
		assert.Equal(t, []Command{Calculate{Code: "result = 2 * 6"}}, Parse("PYTHON_EXECUTE result = 2 * 6"))
	})

	t.Run("Wait", func(t *testing.T) {
		assert.Equal(t, []Command{Wait{Millis: 500}}, Parse("WAIT 500"))
	})
}

func TestParse_CaseInsensitiveKeywords(t *testing.T) {
	assert.Equal(t, []Command{Click{X: 1, Y: 2}}, Parse("click 1 2"))
	assert.Equal(t, []Command{Wait{Millis: 100}}, Parse("wAiT 100"))
}

func TestParse_DropsMalformedLines(t *testing.T) {
	t.Run("ClickMissingArgs", func(t *testing.T) {
		assert.Empty(t, Parse("CLICK 500"))
	})

	t.Run("DragNonNumeric", func(t *testing.T) {
		assert.Empty(t, Parse("DRAG a b c d"))
	})

	t.Run("WaitMissingArg", func(t *testing.T) {
		assert.Empty(t, Parse("WAIT"))
	})

	t.Run("UnrecognizedKeyword", func(t *testing.T) {
		assert.Empty(t, Parse("LAUNCH_MISSILES 1 2"))
	})

	t.Run("MalformedLinesDoNotAffectNeighbors", func(t *testing.T) {
		commands := Parse("CLICK 1\nWAIT 250\nNONSENSE")
		assert.Equal(t, []Command{Wait{Millis: 250}}, commands)
	})
}

func TestParse_SkipsCommentsAndBlanks(t *testing.T) {
	commands := Parse("# plan follows\n\nCLICK 10 20\n# done")
	assert.Equal(t, []Command{Click{X: 10, Y: 20}}, commands)
}

func TestCommand_String(t *testing.T) {
	assert.Equal(t, "CLICK 500 500", Click{X: 500, Y: 500}.String())
	assert.Equal(t, "DRAG 1 2 3 4", Drag{X1: 1, Y1: 2, X2: 3, Y2: 4}.String())
	assert.Equal(t, "TYPE hi", TypeText{Text: "hi"}.String())
	assert.Equal(t, "KEY tab", KeyPress{Name: "tab"}.String())
	assert.Equal(t, "PYTHON_EXECUTE x = 1", Calculate{Code: "x = 1"}.String())
	assert.Equal(t, "WAIT 2000", Wait{Millis: 2000}.String())
}
