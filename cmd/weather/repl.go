package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/lookup"
	"github.com/couchcryptid/weather-lookup-service/internal/render"
)

const prompt = "> "

type searcher interface {
	Search(ctx context.Context, raw string) (lookup.Result, error)
	Rerun(ctx context.Context, n int) (lookup.Result, error)
}

type lister interface {
	List() []string
}

// repl reads commands from in until EOF, :quit, or ctx is done. Lookup
// failures are printed as notices and never end the session. Input is read
// on its own goroutine so cancellation does not wait for a newline.
func repl(ctx context.Context, in io.Reader, out io.Writer, s searcher, h lister) error {
	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-readCtx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	fmt.Fprint(out, prompt)
	for {
		var raw string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			raw = l
		}
		if ctx.Err() != nil {
			return nil
		}
		if quit, err := handleLine(ctx, strings.TrimSpace(raw), out, s, h); quit || err != nil {
			return err
		}
		fmt.Fprint(out, prompt)
	}
}

// handleLine runs one command and reports whether the session should end.
func handleLine(ctx context.Context, line string, out io.Writer, s searcher, h lister) (bool, error) {
	switch {
	case line == ":quit" || line == ":q":
		return true, nil
	case line == ":history":
		return false, render.WriteHistory(out, h.List())
	case strings.HasPrefix(line, "!"):
		n, err := strconv.Atoi(line[1:])
		if err != nil {
			fmt.Fprint(out, "! usage: !<number> from :history\n")
			return false, nil
		}
		if _, err := s.Rerun(ctx, n); err != nil {
			return ctx.Err() != nil, report(out, err)
		}
	default:
		if _, err := s.Search(ctx, line); err != nil {
			return ctx.Err() != nil, report(out, err)
		}
	}
	return false, nil
}

func report(out io.Writer, err error) error {
	_, werr := fmt.Fprintf(out, "! %s\n", notice(err))
	return werr
}

// notice turns a lookup error into the message shown to the user.
func notice(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
	case errors.Is(err, domain.ErrNotFound):
		return "Location not found"
	case errors.Is(err, domain.ErrNetwork):
		return "Error fetching data. Please try again."
	default:
		return err.Error()
	}
}
