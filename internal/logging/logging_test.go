package logging

import (
	"bytes"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
)

func TestNew_FiltersBelowWarn(t *testing.T) {
	var buf bytes.Buffer
	h := log.NewHelper(New(&buf, false))

	h.Debugf("hidden %d", 1)
	h.Infof("hidden %d", 2)
	assert.Empty(t, buf.String())

	h.Warnf("shown %d", 3)
	assert.Contains(t, buf.String(), "shown 3")
	assert.Contains(t, buf.String(), "WARN")
}

func TestNew_DebugPassesEverything(t *testing.T) {
	var buf bytes.Buffer
	h := log.NewHelper(New(&buf, true))

	h.Debugf("opened %s", "nutsdb")
	assert.Contains(t, buf.String(), "opened nutsdb")
	assert.Contains(t, buf.String(), "ts=")
}
