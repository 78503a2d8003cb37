package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindInsufficientStock, http.StatusBadRequest},
		{KindInsufficientBalance, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindTooManyRequests, http.StatusTooManyRequests},
		{KindUnexpected, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.HTTPStatus())
		})
	}
}

func TestIsMatchesKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("get product 9: %w", NotFound("Ürün bulunamadı"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Ürün bulunamadı", MessageOf(err, "fallback"))
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(sql.ErrConnDone, "Satın alma işlemi sırasında hata oluştu")

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Equal(t, KindUnexpected, KindOf(err))
	assert.Equal(t, KindUnexpected, KindOf(errors.New("plain")))
	assert.Equal(t, "fallback", MessageOf(errors.New("plain"), "fallback"))
}
