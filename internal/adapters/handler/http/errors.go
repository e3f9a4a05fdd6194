package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
)

var badRequestErrors = []error{
	domain.ErrInvalidDate,
	domain.ErrInvalidRange,
	domain.ErrRangeTooLarge,
	domain.ErrInvalidYear,
	domain.ErrUnknownMetric,
	domain.ErrInvalidGranularity,
	domain.ErrStoreNameEmpty,
	domain.ErrStoreNameTooLong,
	domain.ErrStoreInvalidMerchantID,
	domain.ErrInvalidMarketplace,
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrStoreNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
