package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
)

func TestTimeLogsOperationAndError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	ctx := WithRequestID(context.Background(), "abc")
	err := errors.New("boom")
	Time(ctx, "solve")(&err)

	out := buf.String()
	if !strings.Contains(out, "req_id=abc") || !strings.Contains(out, "op=solve") || !strings.Contains(out, "err=boom") {
		t.Fatalf("unexpected log line: %q", out)
	}
}

func TestWithRequestIDGenerates(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	if RequestID(ctx) == "" {
		t.Fatalf("expected generated request id")
	}
}
