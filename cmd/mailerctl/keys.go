package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nyashahama/mandrill-mailer/internal/store"
)

var setKeyField string

var setKeyCmd = &cobra.Command{
	Use:   "set-key <api-key>",
	Short: "Store the Mandrill API key in the settings record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		q, err := queries(ctx)
		if err != nil {
			return err
		}

		field := setKeyField
		if field == "" {
			field = cfg.SettingsAPIKeyField
		}

		st := store.New(pool, q)
		rows, err := st.SaveSettings(ctx, cfg.SettingsDoctype, map[string]string{field: args[0]})
		if err != nil {
			return err
		}
		for _, row := range rows {
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s.%s (%s)\n", row.Doctype, row.Field, mask(row.Value))
		}
		return nil
	},
}

var checkKeyCmd = &cobra.Command{
	Use:   "check-key",
	Short: "Resolve the API key and verify it against Mandrill",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		src, err := keySource(ctx)
		if err != nil {
			return err
		}
		key, err := src.APIKey(ctx)
		if err != nil {
			return err
		}
		if err := mandrillClient().Ping(ctx, key); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Key %s is valid.\n", mask(key))
		return nil
	},
}

func init() {
	setKeyCmd.Flags().StringVar(&setKeyField, "field", "", "Settings field to write (default from SETTINGS_API_KEY_FIELD)")
}

// mask hides all but the last four characters of a secret.
func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
