package impl

import (
	"io"
	"log/slog"

	"pressmart/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(sellerAutoApprove bool) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost: 4,
		},
		Policy: &config.PolicyConfig{
			SellerAutoApprove: sellerAutoApprove,
		},
	}
}
