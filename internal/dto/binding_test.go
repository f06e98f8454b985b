package dto_test

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookkeepr/bookkeeping_app/internal/dto"
)

func bindCreateAccount(t *testing.T, body string) error {
	t.Helper()
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	var out dto.CreateAccountRequest
	return binding.JSON.Bind(req, &out)
}

func TestAccountCodeBinding(t *testing.T) {
	require.NoError(t, dto.RegisterCustomValidators())

	assert.NoError(t, bindCreateAccount(t, `{"code":"1000","name":"Cash","accountType":"ASSET"}`))
	assert.NoError(t, bindCreateAccount(t, `{"code":"1000.10-AR","name":"Receivables","accountType":"ASSET"}`))

	assert.Error(t, bindCreateAccount(t, `{"code":"-1000","name":"Cash","accountType":"ASSET"}`), "leading separator")
	assert.Error(t, bindCreateAccount(t, `{"code":"10 00","name":"Cash","accountType":"ASSET"}`), "whitespace")
	assert.Error(t, bindCreateAccount(t, `{"name":"Cash","accountType":"ASSET"}`), "missing code")
}
