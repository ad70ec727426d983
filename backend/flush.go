package backend

import (
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

// flushOnCore syncs the wrapped core after writing any entry at or
// above its level.
type flushOnCore struct {
	zapcore.Core
	at zapcore.Level
}

func (c *flushOnCore) With(fields []zapcore.Field) zapcore.Core {
	return &flushOnCore{Core: c.Core.With(fields), at: c.at}
}

func (c *flushOnCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *flushOnCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	err := c.Core.Write(ent, fields)
	if ent.Level >= c.at {
		err = multierr.Append(err, c.Core.Sync())
	}
	return err
}
