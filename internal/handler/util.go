package handler

import (
	"strconv"
	"strings"
)

func upper(s string) string { return strings.ToUpper(s) }

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func atoi(s string) (int, error) { return strconv.Atoi(s) }

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

func parseInt64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
