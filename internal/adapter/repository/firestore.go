package repository

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"saturnalia/pkg/errors"
)

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// classify maps backend failures onto the application error taxonomy:
// permission problems surface as remote rejections, network and deadline
// problems as transient, everything else as internal.
func classify(message string, err error) error {
	switch status.Code(err) {
	case codes.PermissionDenied:
		return errors.RemoteRejected(message, err)
	case codes.Unavailable, codes.DeadlineExceeded:
		return errors.Transient(message, err)
	default:
		return errors.Internal(message, err)
	}
}
