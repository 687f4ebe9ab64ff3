package constant

import "github.com/pkg/errors"

const (
	DuplicateActiveTokenErrMsg = "owner already has an active token"
	InvalidTransitionErrMsg    = "token is not in the required state"
	EmptyQueueErrMsg           = "no waiting tokens in queue"
	NotFoundErrMsg             = "not found"
	UnauthorizedErrMsg         = "unauthorized"
	InvalidArgumentErrMsg      = "invalid argument"
)

var (
	DuplicateActiveTokenErr = errors.New(DuplicateActiveTokenErrMsg)
	InvalidTransitionErr    = errors.New(InvalidTransitionErrMsg)
	EmptyQueueErr           = errors.New(EmptyQueueErrMsg)
	NotFoundErr             = errors.New(NotFoundErrMsg)
	UnauthorizedErr         = errors.New(UnauthorizedErrMsg)
	InvalidArgumentErr      = errors.New(InvalidArgumentErrMsg)
)
