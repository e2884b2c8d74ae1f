package internal

import "errors"

var (
	ErrNoRecords = errors.New("no records")

	ErrValidation     = errors.New("validation failed")
	ErrUnknownStatus  = errors.New("unknown order status")
	ErrUnknownUrgency = errors.New("unknown urgency level")

	ErrEmptyExport = errors.New("nothing to export")

	ErrWrongDeleteCode = errors.New("wrong delete confirmation code")
)
