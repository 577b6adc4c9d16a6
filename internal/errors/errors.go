package errors

import "errors"

var ErrNotFound = errors.New("resource not found")
var ErrConflict = errors.New("resource already exists")
var ErrInvalidArgument = errors.New("invalid argument")
var ErrGatewayUnavailable = errors.New("push gateway unavailable")
