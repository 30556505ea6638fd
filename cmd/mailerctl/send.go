package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/nyashahama/mandrill-mailer/internal/mailer"
)

type sendFlags struct {
	recipients string
	variables  string
	template   string
	from       string
	subject    string
	bcc        string
	raise      bool
}

var sendOpts sendFlags

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one templated email",
	Example: `  mailerctl send --template welcome --from noreply@example.com \
    --to '[{"email":"ada@example.com","name":"Ada"}]' \
    --vars '[{"name":"first_name","content":"Ada"}]'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		req, err := sendOpts.request()
		if err != nil {
			return err
		}

		src, err := keySource(ctx)
		if err != nil {
			return err
		}
		d := mailer.New(mandrillClient(), src, recorder(ctx), logger)

		results, err := d.Send(ctx, req)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(map[string]any{"message": results}, "", "  ")
		if err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	f := sendCmd.Flags()
	f.StringVar(&sendOpts.recipients, "to", "", "Recipients as a JSON array of {email, name, type}")
	f.StringVar(&sendOpts.variables, "vars", "", "Merge variables as a JSON array of {name, content}")
	f.StringVar(&sendOpts.template, "template", "", "Mandrill template name")
	f.StringVar(&sendOpts.from, "from", "", "Sender address")
	f.StringVar(&sendOpts.subject, "subject", "", "Subject override")
	f.StringVar(&sendOpts.bcc, "bcc", "", "BCC address")
	f.BoolVar(&sendOpts.raise, "raise", false, "Return provider errors instead of logging them")
}

// request parses the serialized flags into a mailer.Request. Validation is
// left to the dispatcher.
func (f sendFlags) request() (mailer.Request, error) {
	recipients, err := mailer.ParseRecipients(f.recipients)
	if err != nil {
		return mailer.Request{}, err
	}
	variables, err := mailer.ParseVariables(f.variables)
	if err != nil {
		return mailer.Request{}, err
	}
	return mailer.Request{
		Recipients:   recipients,
		Subject:      f.subject,
		FromEmail:    f.from,
		Template:     f.template,
		Variables:    variables,
		BCCAddress:   f.bcc,
		RaiseOnError: mailer.Flag(f.raise),
	}, nil
}
