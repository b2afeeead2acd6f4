package dto

import (
	domainerrors "github.com/unifiedui/admin-gateway/internal/domain/errors"
)

// NewErrorInfo converts an operation error. It returns nil for nil.
func NewErrorInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	if domainErr, ok := domainerrors.GetDomainError(err); ok {
		return &ErrorInfo{
			Code:           domainErr.Code,
			Message:        domainErr.Message,
			Reason:         string(domainErr.Reason),
			UpstreamStatus: domainErr.UpstreamStatus,
		}
	}
	return &ErrorInfo{
		Code:    domainerrors.ErrCodeInternal,
		Message: err.Error(),
	}
}
