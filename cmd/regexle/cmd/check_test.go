package cmd

import "testing"

// A check without --text performs static analysis only; nothing is
// executed, and the command must still render a report cleanly.
func TestCheckStaticOnly(t *testing.T) {
	for _, format := range []string{"human", "json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			rootCmd.SetArgs([]string{"check", "(a+)+", "--output-format", format})
			if err := rootCmd.Execute(); err != nil {
				t.Fatalf("check failed: %v", err)
			}
		})
	}
}

func TestCheckWithText(t *testing.T) {
	rootCmd.SetArgs([]string{"check", "a+", "--text", "aaa bbb aaa", "--flags", "g"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	checkText = ""
	checkFlags = ""
}

func TestCheckRejectsBadFlags(t *testing.T) {
	rootCmd.SetArgs([]string{"check", "a+", "--flags", "z"})
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	defer func() {
		rootCmd.SilenceErrors = false
		rootCmd.SilenceUsage = false
	}()
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected an error for an unknown regex flag")
	}
	checkFlags = ""
}
