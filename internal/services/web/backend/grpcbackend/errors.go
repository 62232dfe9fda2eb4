package grpcbackend

import (
	"context"
	"errors"

	"github.com/louisbranch/sacredverses/internal/services/web/backend"
	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Reasons the content service attaches as errdetails.ErrorInfo.
const (
	ReasonNotAdmin      = "NOT_ADMIN"
	ReasonNotSignedIn   = "NOT_SIGNED_IN"
	ReasonImageTooLarge = "IMAGE_TOO_LARGE"
	ReasonNotAnImage    = "NOT_AN_IMAGE"
)

// mapError converts transport failures into typed web errors. Reasons in
// ErrorInfo details take precedence over the status code.
func mapError(err error, unavailable string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.KindUnavailable, "error.backend.unavailable", unavailable, errors.Join(backend.ErrUnavailable, err))
	}
	st, ok := status.FromError(err)
	if !ok {
		return apperrors.Wrap(apperrors.KindUnavailable, "error.backend.unavailable", unavailable, errors.Join(backend.ErrUnavailable, err))
	}
	switch errorReason(st) {
	case ReasonNotAdmin:
		return apperrors.Wrap(apperrors.KindForbidden, "error.backend.forbidden", "admin role required", backend.ErrPermissionDenied)
	case ReasonNotSignedIn:
		return apperrors.Wrap(apperrors.KindUnauthorized, "error.backend.unauthenticated", "sign in required", backend.ErrUnauthenticated)
	case ReasonImageTooLarge, ReasonNotAnImage:
		return apperrors.Wrap(apperrors.KindInvalidInput, "error.upload.rejected", st.Message(), err)
	}
	switch st.Code() {
	case codes.InvalidArgument, codes.FailedPrecondition:
		return apperrors.Wrap(apperrors.KindInvalidInput, "error.backend.invalid", st.Message(), err)
	case codes.Unauthenticated:
		return apperrors.Wrap(apperrors.KindUnauthorized, "error.backend.unauthenticated", "sign in required", backend.ErrUnauthenticated)
	case codes.PermissionDenied:
		return apperrors.Wrap(apperrors.KindForbidden, "error.backend.forbidden", "permission denied", backend.ErrPermissionDenied)
	case codes.NotFound:
		return apperrors.Wrap(apperrors.KindNotFound, "error.backend.not_found", "not found", backend.ErrNotFound)
	default:
		return apperrors.Wrap(apperrors.KindUnavailable, "error.backend.unavailable", unavailable, errors.Join(backend.ErrUnavailable, err))
	}
}

func errorReason(st *status.Status) string {
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}
