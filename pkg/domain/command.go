package domain

import (
	"fmt"
	"strings"
)

// Command is the primitive operation a state performs when a timeline steps through it.
type Command string

const (
	CommandScan      Command = "SCAN"
	CommandPrint     Command = "PRINT"
	CommandScanLeft  Command = "SCAN_LEFT"
	CommandScanRight Command = "SCAN_RIGHT"
	CommandRead      Command = "READ"
	CommandWrite     Command = "WRITE"
	CommandMoveLeft  Command = "MOVE_LEFT"
	CommandMoveRight Command = "MOVE_RIGHT"
	CommandMoveUp    Command = "MOVE_UP"
	CommandMoveDown  Command = "MOVE_DOWN"

	// CommandNone belongs to states that only exist as transition targets
	// (e.g. a registered "accept" state). Stepping through one produces nothing.
	CommandNone Command = ""
)

// RequiresMemory reports whether the command operates on a named memory.
func (c Command) RequiresMemory() bool {
	switch c {
	case CommandRead, CommandWrite:
		return true
	default:
		return c.IsMove()
	}
}

// IsValid reports whether c is one of the known commands or CommandNone.
func (c Command) IsValid() bool {
	switch c {
	case CommandNone, CommandScan, CommandPrint, CommandScanLeft, CommandScanRight, CommandRead, CommandWrite,
		CommandMoveLeft, CommandMoveRight, CommandMoveUp, CommandMoveDown:
		return true
	}
	return false
}

// IsMove reports whether the command moves the head of a bound tape.
func (c Command) IsMove() bool {
	_, ok := c.Direction()
	return ok
}

// Direction returns the head movement of a MOVE_* command.
func (c Command) Direction() (Direction, bool) {
	switch c {
	case CommandMoveLeft:
		return Left, true
	case CommandMoveRight:
		return Right, true
	case CommandMoveUp:
		return Up, true
	case CommandMoveDown:
		return Down, true
	}
	return 0, false
}

// ParseCommand accepts the canonical names plus the short tape forms used by
// the definition language (LEFT, RIGHT, UP, DOWN, "SCAN RIGHT").
func ParseCommand(s string) (Command, error) {
	norm := strings.ToUpper(strings.Join(strings.Fields(s), "_"))
	switch norm {
	case "":
		return CommandNone, nil
	case "LEFT":
		return CommandMoveLeft, nil
	case "RIGHT":
		return CommandMoveRight, nil
	case "UP":
		return CommandMoveUp, nil
	case "DOWN":
		return CommandMoveDown, nil
	}
	if c := Command(norm); c.IsValid() {
		return c, nil
	}
	return CommandNone, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}
