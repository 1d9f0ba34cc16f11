package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thermocore/leadapi/internal/contact"
	"github.com/thermocore/leadapi/pkg/id"
	"github.com/thermocore/leadapi/pkg/logger"
	"github.com/thermocore/leadapi/pkg/mailer"
	"github.com/thermocore/leadapi/pkg/mailer/resend"
)

var errNoProvider = errors.New("RESEND_API_KEY is not set")

func newMailTestCmd(root *rootOptions) *cobra.Command {
	var (
		to   string
		lang string
	)

	cmd := &cobra.Command{
		Use:   "mail-test",
		Short: "Send a sample notification and confirmation",
		Long: `Renders both contact emails for a sample submission and sends them to
the given address through Resend. Use it to check DNS, sender and templates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			if !cfg.Resend.Enabled() {
				return errNoProvider
			}

			log := logger.New(cfg.Logger, os.Stderr)
			m := mailer.New(resend.New(cfg.Resend), mailer.NewRenderer(contact.Templates()), cfg.Mailer)
			d := contact.NewMailDispatcher(m, to,
				contact.WithSendTimeout(cfg.Contact.SendTimeout),
				contact.WithDispatchLogger(log),
			)

			out := d.Dispatch(cmd.Context(), contact.Submission{
				Name:    "Teste",
				Email:   to,
				Company: "Thermocore",
				Service: "Termografia",
				Urgency: "normal",
				Message: "Mensagem de teste enviada por leadapi mail-test.",
			}, contact.Meta{ID: id.New(), Language: lang, ReceivedAt: time.Now()})

			fmt.Fprintf(cmd.OutOrStdout(), "notification: %s\nconfirmation: %s\n",
				status(out.NotificationErr), status(out.ConfirmationErr))
			return errors.Join(out.NotificationErr, out.ConfirmationErr)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "recipient address")
	cmd.Flags().StringVar(&lang, "lang", "pt-BR", "confirmation language")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func status(err error) string {
	if err != nil {
		return "failed: " + err.Error()
	}
	return "sent"
}
