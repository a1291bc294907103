package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func readRecords(t *testing.T, path string) []record {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	var out []record
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("decode %q: %v", sc.Text(), err)
		}
		out = append(out, rec)
	}
	return out
}

func TestTraceOnlyWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "llamabar.log")
	Configure(path)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		Configure("")
	})

	Trace("menu.open", map[string]interface{}{"session": 1})
	SetTraceEnabled(true)
	Trace("menu.close", map[string]interface{}{"session": 1})
	Error(nil)
	Error(errors.New("server exited"))
	Close()

	recs := readRecords(t, path)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d: %#v", len(recs), recs)
	}
	if recs[0].Level != "trace" || recs[0].Event != "menu.close" {
		t.Fatalf("unexpected trace record %#v", recs[0])
	}
	if recs[1].Level != "error" || recs[1].Message != "server exited" {
		t.Fatalf("unexpected error record %#v", recs[1])
	}
}

func TestConfigureSwitchesFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.log")
	second := filepath.Join(dir, "b.log")
	t.Cleanup(func() { Configure("") })

	Configure(first)
	Warnf("port %d busy", 8080)
	Configure(second)
	Warnf("second")
	Close()

	if recs := readRecords(t, first); len(recs) != 1 || recs[0].Message != "port 8080 busy" {
		t.Fatalf("unexpected first log %#v", recs)
	}
	if recs := readRecords(t, second); len(recs) != 1 || recs[0].Level != "warn" {
		t.Fatalf("unexpected second log %#v", recs)
	}
}
