package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeSet   Type = "set"
	TypeIn    Type = "in"
	TypeClear Type = "clear"
	TypeDebug Type = "debug"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type SetArgs struct {
	Date string
}

type InArgs struct {
	Window string
}

type Command struct {
	Type Type
	Raw  string
	Set  *SetArgs
	In   *InArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeSet:
		return parseSet(input, args)
	case TypeIn:
		return parseIn(input, args)
	case TypeClear, TypeDebug:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseSet(raw string, args []string) (Command, error) {
	date := strings.TrimSpace(strings.Join(args, " "))
	if date == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "set requires a date"}
	}
	return Command{Type: TypeSet, Raw: raw, Set: &SetArgs{Date: date}}, nil
}

func parseIn(raw string, args []string) (Command, error) {
	window := strings.TrimSpace(strings.Join(args, " "))
	if window == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "in requires a duration, e.g. /in 2d4h"}
	}
	return Command{Type: TypeIn, Raw: raw, In: &InArgs{Window: window}}, nil
}
