package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeShow   Type = "show"
	TypeEdit   Type = "edit"
	TypeDelete Type = "delete"
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

type AddArgs struct {
	Title    string
	Category string
	Image    string
}

// ShowArgs selects the category filter. An empty Category means all tasks.
type ShowArgs struct {
	Category string
}

// EditArgs and DeleteArgs target the selected task when ID is empty.
type EditArgs struct {
	ID string
}

type DeleteArgs struct {
	ID string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Show   *ShowArgs
	Edit   *EditArgs
	Delete *DeleteArgs
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

	switch head {
	case string(TypeAdd), "new":
		return parseAdd(input, args)
	case string(TypeShow), "filter":
		return parseShow(input, args)
	case string(TypeEdit):
		return parseEdit(input, args)
	case string(TypeDelete), "rm":
		return parseDelete(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd reads "add <title words> [#category] [img:<url>]".
func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(arg, "#") && len(arg) > 1:
			out.Category = strings.TrimPrefix(arg, "#")
		case strings.HasPrefix(lower, "img:"):
			out.Image = arg[len("img:"):]
		case strings.HasPrefix(lower, "image:"):
			out.Image = arg[len("image:"):]
		default:
			words = append(words, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(words, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a category or all"}
	}
	subject := strings.Join(args, " ")
	if strings.HasPrefix(strings.ToLower(subject), "category:") {
		subject = strings.TrimSpace(subject[len("category:"):])
	}
	if strings.EqualFold(subject, "all") {
		subject = ""
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Category: subject}}, nil
}

func parseEdit(raw string, args []string) (Command, error) {
	if len(args) > 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit takes at most one task id"}
	}
	out := EditArgs{}
	if len(args) == 1 {
		out.ID = args[0]
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &out}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) > 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete takes at most one task id"}
	}
	out := DeleteArgs{}
	if len(args) == 1 {
		out.ID = args[0]
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &out}, nil
}
