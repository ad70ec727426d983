// Package formatter renders log records according to an spdlog-style
// pattern string.
//
// A pattern is compiled once with Compile into a list of literal runs
// and placeholders. Rendering is a single append pass into a pooled
// byte slice, relying on Go's Append-style functions (strconv.AppendInt,
// time.AppendFormat) so that the hot path does not allocate.
//
// Recognised placeholders:
//
//	%v  message text            %n  logger name
//	%l  level name              %L  short level (T D I W E C)
//	%Y  year (2006)             %y  year (06)
//	%m  month (01-12)           %d  day (01-31)
//	%H  hour (00-23)            %I  hour (01-12)
//	%M  minute                  %S  second
//	%e  milliseconds            %f  microseconds
//	%F  nanoseconds             %p  AM/PM
//	%z  UTC offset (+02:00)     %E  seconds since epoch
//	%a  weekday (Mon)           %A  weekday (Monday)
//	%b  month (Jan)             %B  month (January)
//	%D  date (01/02/06)         %T  time (15:04:05)
//	%c  date and time           %P  process id
//	%s  source file base name   %g  source file full path
//	%#  source line             %!  source function
//	%@  source file:line        %%  literal percent
//	%^  start colour range      %$  end colour range
//
// Any placeholder accepts an alignment prefix between % and the flag:
// %8l pads on the left, %-8l pads on the right, %=8l centres, and a
// trailing ! (%-5!l) truncates values longer than the width.
//
// Message text is copied verbatim. A message that itself contains
// placeholder syntax never changes how later messages are rendered.
//
// Encoder adapts a compiled Pattern to zapcore.Encoder so the pattern
// can drive any zap core. Level mapping between core.Level and
// zapcore.Level lives here as well since the encoder is its first
// consumer.
package formatter
