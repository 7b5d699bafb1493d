package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/tentwenty/ticktock/internal/domain"
	"github.com/tentwenty/ticktock/internal/service"
)

// statusFlag is a pflag.Value that accepts a derived status name or "all".
type statusFlag struct {
	value string
}

var _ pflag.Value = (*statusFlag)(nil)

func newStatusFlag() *statusFlag {
	return &statusFlag{value: service.FilterAll}
}

func (f *statusFlag) String() string { return f.value }

func (f *statusFlag) Type() string { return "status" }

func (f *statusFlag) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == service.FilterAll {
		f.value = service.FilterAll
		return nil
	}
	status, ok := domain.ParseDerivedStatus(s)
	if !ok {
		return fmt.Errorf("unknown status %q (expected %s)", s, statusChoices())
	}
	f.value = string(status)
	return nil
}

func statusChoices() string {
	names := make([]string, 0, len(domain.DerivedStatuses)+1)
	for _, s := range domain.DerivedStatuses {
		names = append(names, string(s))
	}
	names = append(names, service.FilterAll)
	return strings.Join(names, "|")
}
