package formatter

import (
	"fmt"
	"sort"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"github.com/coronaengine/corona-log/core"
)

var bufferPool = buffer.NewPool()

// Encoder is a zapcore.Encoder that renders entries with a Pattern.
// Context fields added through With and fields passed at the call site
// are appended after the rendered line as key=value pairs, sorted by
// key.
type Encoder struct {
	*zapcore.MapObjectEncoder
	pattern *Pattern
	color   bool
}

// NewEncoder creates an encoder for p. color enables the %^ %$ range.
func NewEncoder(p *Pattern, color bool) *Encoder {
	return &Encoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		pattern:          p,
		color:            color,
	}
}

// Clone implements zapcore.Encoder
func (e *Encoder) Clone() zapcore.Encoder {
	clone := NewEncoder(e.pattern, e.color)
	for k, v := range e.Fields {
		clone.Fields[k] = v
	}
	return clone
}

// EncodeEntry implements zapcore.Encoder
func (e *Encoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	rec := Record{
		Time:    ent.Time,
		Level:   FromZap(ent.Level),
		Logger:  ent.LoggerName,
		Message: ent.Message,
	}
	if ent.Caller.Defined {
		rec.Location = core.Location{
			File:     ent.Caller.File,
			Line:     ent.Caller.Line,
			Function: ent.Caller.Function,
			Defined:  true,
		}
	}

	line := getLine()
	*line = e.pattern.Append(*line, &rec, e.color)

	buf := bufferPool.Get()
	_, _ = buf.Write(*line)
	putLine(line)

	if len(fields) > 0 || len(e.Fields) > 0 {
		e.appendFields(buf, fields)
	}
	if ent.Stack != "" {
		buf.AppendByte('\n')
		buf.AppendString(ent.Stack)
	}
	buf.AppendByte('\n')
	return buf, nil
}

func (e *Encoder) appendFields(buf *buffer.Buffer, fields []zapcore.Field) {
	all := e.Fields
	if len(fields) > 0 {
		m := zapcore.NewMapObjectEncoder()
		for k, v := range e.Fields {
			m.Fields[k] = v
		}
		for _, f := range fields {
			f.AddTo(m)
		}
		all = m.Fields
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		buf.AppendByte(' ')
		buf.AppendString(k)
		buf.AppendByte('=')
		fmt.Fprint(buf, all[k])
	}
}
