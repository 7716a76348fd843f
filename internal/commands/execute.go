package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Set   func(SetArgs) (Result, error)
	In    func(InArgs) (Result, error)
	Clear func() (Result, error)
	Debug func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeSet:
		if handlers.Set == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "set handler not configured"}
		}
		return handlers.Set(*cmd.Set)
	case TypeIn:
		if handlers.In == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "in handler not configured"}
		}
		return handlers.In(*cmd.In)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "clear handler not configured"}
		}
		return handlers.Clear()
	case TypeDebug:
		if handlers.Debug == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "debug handler not configured"}
		}
		return handlers.Debug()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
