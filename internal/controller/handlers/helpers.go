package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errUsage = errors.New("usage")

// commandArgs возвращает аргументы команды: "/swap 3 8" -> ["3", "8"]
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}

// parseIDs разбирает ровно n положительных ID из аргументов команды
func parseIDs(text string, n int) ([]int64, error) {
	args := commandArgs(text)
	if len(args) != n {
		return nil, fmt.Errorf("%w: expected %d ids, got %d", errUsage, n, len(args))
	}

	ids := make([]int64, 0, n)
	for _, arg := range args {
		id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: bad id %q", errUsage, arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
