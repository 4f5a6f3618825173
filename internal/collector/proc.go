package collector

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// readProcFirstField parses the first whitespace-separated field of a
// kernel pseudo-file holding one line of numbers, e.g.
// /proc/sys/fs/file-nr or /proc/sys/kernel/random/entropy_avail.
func readProcFirstField(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, fmt.Errorf("%s: empty file", path)
	}
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return value, nil
}

// readProcStatCounter returns the cumulative counter following the given
// key in /proc/stat, e.g. "ctxt 123456" or "intr 654321 0 1 ...".
func readProcStatCounter(path, key string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[0] != key {
			continue
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		return value, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("%s: no %q line", path, key)
}
