package fluentlogger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient_RequiresTagPrefix(t *testing.T) {
	_, err := NewClient(Config{Host: "localhost", Port: 24224})
	assert.ErrorContains(t, err, "tag prefix")
}
