package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootLeavesErrorPrintingToMain(t *testing.T) {
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"list", "--difficulty", "nightmare"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		flagDifficulty = ""
	})

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("Execute() = nil, expected an unknown difficulty error")
	}
	if !strings.Contains(err.Error(), "nightmare") {
		t.Errorf("err = %v, expected it to name the difficulty", err)
	}
	if errOut.Len() != 0 || out.Len() != 0 {
		t.Errorf("cobra printed %q / %q, expected nothing", out.String(), errOut.String())
	}
}
