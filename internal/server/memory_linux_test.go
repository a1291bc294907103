package server

import "testing"

func TestParseStatusRSS(t *testing.T) {
	status := []byte("Name:\tllama-server\nVmPeak:\t  900 kB\nVmRSS:\t  2048 kB\nThreads:\t8\n")
	rss, err := parseStatusRSS(status)
	if err != nil || rss != 2048*1024 {
		t.Fatalf("rss = %d, %v", rss, err)
	}
	if rss, err := parseStatusRSS([]byte("Name:\tx\n")); err != nil || rss != 0 {
		t.Fatalf("missing field = %d, %v", rss, err)
	}
}
