package builder

import (
	"fmt"

	"github.com/colt-lang/coltc/internal/source"
)

func (b *Builder) errorf(rng source.TokenRange, format string, args ...any) {
	info := b.buf.SourceInfoRange(rng)
	b.rep.Error(fmt.Sprintf(format, args...), &info, 0)
}

func (b *Builder) warnf(rng source.TokenRange, format string, args ...any) {
	info := b.buf.SourceInfoRange(rng)
	b.rep.Warn(fmt.Sprintf(format, args...), &info, 0)
}
