package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maheshmohan7319/GOODINSIDE/internal/config"
)

func TestConnectPostgres_InvalidDSN(t *testing.T) {
	_, err := ConnectPostgres(config.Config{DatabaseURL: "postgres://user@%zz/db"})
	assert.Error(t, err)
}
