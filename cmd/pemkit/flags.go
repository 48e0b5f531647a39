package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// enumValue is a pflag.Value restricted to a fixed set of strings, so
// bad flag values fail at parse time with the allowed set in the
// message instead of deep inside a command.
type enumValue struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(def string, allowed ...string) *enumValue {
	return &enumValue{value: def, allowed: allowed}
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Type() string { return "string" }

func (e *enumValue) Set(v string) error {
	for _, a := range e.allowed {
		if v == a {
			e.value = v
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s", strings.Join(e.allowed, ", "))
}

// completion returns a shell completion function suggesting the
// enum's allowed values.
func (e *enumValue) completion() func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return e.allowed, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerCompletion registers a shell completion function for a flag
// on a command. It panics if the flag does not exist (programmer
// error).
func registerCompletion(cmd *cobra.Command, flagName string, completeFunc func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective)) {
	if err := cmd.RegisterFlagCompletionFunc(flagName, completeFunc); err != nil {
		panic(fmt.Sprintf("%s --%s: %v", cmd.Name(), flagName, err))
	}
}

// directoryCompletion suggests only directories (no regular files).
func directoryCompletion(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveFilterDirs
}
