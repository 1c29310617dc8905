package toolkit

import (
	"context"
	"strings"
	"time"

	"github.com/tailored-agentic-units/goagent/core/protocol"
	"github.com/tailored-agentic-units/goagent/tools"
)

// Datetime returns a tool reporting the current time in RFC 3339. A non-empty
// input is read as an IANA zone name such as Asia/Shanghai. now defaults to
// time.Now.
func Datetime(now func() time.Time) tools.Tool {
	if now == nil {
		now = time.Now
	}
	def := protocol.Tool{
		Name:        NameDatetime,
		Description: "返回当前日期和时间(RFC3339格式)。参数可为空，或为时区名称如 Asia/Shanghai。",
	}
	return tools.New(def, func(_ context.Context, input string) (string, error) {
		t := now()
		if zone := strings.TrimSpace(input); zone != "" {
			loc, err := time.LoadLocation(zone)
			if err != nil {
				return "", err
			}
			t = t.In(loc)
		}
		return t.Format(time.RFC3339), nil
	})
}
