package main

import (
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	sendgrid "github.com/sgconnect/client-go"
)

// Config holds the process streams the CLI reads from and writes to.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config wired to the process streams.
func DefaultConfig() Config {
	return Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// settings are the values resolved from flags, environment and config file.
type settings struct {
	APIKey   string `validate:"required"`
	Host     string `validate:"omitempty,url"`
	From     string `validate:"omitempty,email"`
	FromName string
}

// loadSettings resolves settings from SENDGRID_* environment variables and
// an optional config file. Flags override both.
func loadSettings(c *cli.Context) (*settings, error) {
	v := viper.New()
	v.SetEnvPrefix("sendgrid")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range []string{"api_key", "host", "from", "from_name"} {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrapf(err, "bind %s", key)
		}
	}

	if path := c.String("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	s := &settings{
		APIKey:   v.GetString("api_key"),
		Host:     v.GetString("host"),
		From:     v.GetString("from"),
		FromName: v.GetString("from_name"),
	}
	if c.IsSet("host") {
		s.Host = c.String("host")
	}
	return s, nil
}

// app bundles the state shared by every command.
type app struct {
	cfg      Config
	log      *logrus.Logger
	validate *validator.Validate
	settings *settings
	client   *sendgrid.Client
}

func (a *app) before(c *cli.Context) error {
	if c.Bool("verbose") {
		a.log.SetLevel(logrus.DebugLevel)
	}

	if path := c.String("env-file"); path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrap(err, "load env file")
		}
	}

	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	if err := a.validate.Struct(s); err != nil {
		return errors.Wrap(err, "invalid settings")
	}
	a.settings = s

	opts := []sendgrid.Option{
		sendgrid.WithLogger(a.log),
		sendgrid.WithTimeout(c.Duration("timeout")),
	}
	if s.Host != "" {
		opts = append(opts, sendgrid.WithBaseURL(s.Host))
	}
	client, err := sendgrid.New(s.APIKey, opts...)
	if err != nil {
		return errors.Wrap(err, "create client")
	}
	a.client = client
	return nil
}

func (a *app) output(v any) error {
	enc := json.NewEncoder(a.cfg.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// addresses validates each value as an email address.
func (a *app) addresses(flag string, values []string) ([]sendgrid.EmailAddress, error) {
	out := make([]sendgrid.EmailAddress, 0, len(values))
	for _, value := range values {
		if err := a.validate.Var(value, "required,email"); err != nil {
			return nil, errors.Errorf("--%s: %q is not a valid email address", flag, value)
		}
		out = append(out, sendgrid.EmailAddress{Email: value})
	}
	return out, nil
}

// placeholders merges --data-json with repeated --data key=value pairs.
func placeholders(pairs []string, raw string) (map[string]any, error) {
	data := map[string]any{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, errors.Wrap(err, "--data-json")
		}
	}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.Errorf("--data: expected key=value, got %q", pair)
		}
		data[key] = value
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

func (a *app) send(c *cli.Context) error {
	from := c.String("from")
	if from == "" {
		from = a.settings.From
	}
	fromName := c.String("from-name")
	if fromName == "" {
		fromName = a.settings.FromName
	}
	if err := a.validate.Var(from, "required,email"); err != nil {
		return errors.Errorf("--from: %q is not a valid email address", from)
	}

	to, err := a.addresses("to", c.StringSlice("to"))
	if err != nil {
		return err
	}
	cc, err := a.addresses("cc", c.StringSlice("cc"))
	if err != nil {
		return err
	}
	bcc, err := a.addresses("bcc", c.StringSlice("bcc"))
	if err != nil {
		return err
	}
	data, err := placeholders(c.StringSlice("data"), c.String("data-json"))
	if err != nil {
		return err
	}

	resp, err := a.client.SendTemplatedEmail(c.Context, sendgrid.TemplatedEmail{
		From:         from,
		FromName:     fromName,
		To:           to,
		Cc:           cc,
		Bcc:          bcc,
		Subject:      c.String("subject"),
		TemplateID:   c.String("template-id"),
		Placeholders: data,
	})
	if err != nil {
		return errors.Wrap(err, "send email")
	}

	a.log.WithField("message_id", resp.MessageID).Info("email accepted")
	return a.output(resp)
}

func (a *app) createTemplate(c *cli.Context) error {
	resp, err := a.client.CreateTemplate(c.Context, c.String("name"))
	if err != nil {
		return errors.Wrap(err, "create template")
	}
	return a.output(resp)
}

func (a *app) getTemplate(c *cli.Context) error {
	tpl, err := a.client.GetTemplate(c.Context, c.String("id"))
	if err != nil {
		return errors.Wrap(err, "get template")
	}
	if tpl == nil {
		a.log.Warn("template response was empty")
	}
	return a.output(tpl)
}

func (a *app) listTemplates(c *cli.Context) error {
	list, err := a.client.ListTemplates(c.Context, sendgrid.ListTemplatesParams{
		PageSize:  c.Int("page-size"),
		PageToken: c.String("page-token"),
	})
	if err != nil {
		return errors.Wrap(err, "list templates")
	}
	return a.output(list)
}

// readContent returns the inline flag value, or the named file's contents.
func readContent(c *cli.Context, inline, file string) (string, error) {
	if path := c.String(file); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrapf(err, "--%s", file)
		}
		return string(data), nil
	}
	return c.String(inline), nil
}

func (a *app) updateTemplate(c *cli.Context) error {
	html, err := readContent(c, "html", "html-file")
	if err != nil {
		return err
	}
	plain, err := readContent(c, "plain", "plain-file")
	if err != nil {
		return err
	}

	version, err := a.client.UpdateTemplate(c.Context, sendgrid.UpdateTemplateParams{
		Name:         c.String("name"),
		TemplateID:   c.String("id"),
		HTMLContent:  html,
		PlainContent: plain,
		Subject:      c.String("subject"),
	})
	if err != nil {
		return errors.Wrap(err, "update template")
	}
	return a.output(version)
}

func newApp(cfg Config) *cli.App {
	logger := logrus.New()
	logger.SetOutput(cfg.Stderr)

	a := &app{
		cfg:      cfg,
		log:      logger,
		validate: validator.New(),
	}

	return &cli.App{
		Name:      "sgctl",
		Usage:     "send templated email and manage dynamic templates on SendGrid",
		Reader:    cfg.Stdin,
		Writer:    cfg.Stdout,
		ErrWriter: cfg.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "config file with api_key, host, from, from_name"},
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file loaded before reading SENDGRID_* variables"},
			&cli.StringFlag{Name: "host", Usage: "API base URL (default https://api.sendgrid.com/v3)"},
			&cli.DurationFlag{Name: "timeout", Value: 30 * time.Second, Usage: "HTTP timeout"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log requests"},
		},
		Before: a.before,
		Commands: []*cli.Command{
			{
				Name:   "send",
				Usage:  "send an email rendered from a dynamic template",
				Action: a.send,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "sender address (default SENDGRID_FROM)"},
					&cli.StringFlag{Name: "from-name", Usage: "sender display name"},
					&cli.StringSliceFlag{Name: "to", Required: true, Usage: "recipient address, repeatable"},
					&cli.StringSliceFlag{Name: "cc", Usage: "cc address, repeatable"},
					&cli.StringSliceFlag{Name: "bcc", Usage: "bcc address, repeatable"},
					&cli.StringFlag{Name: "subject"},
					&cli.StringFlag{Name: "template-id", Required: true},
					&cli.StringSliceFlag{Name: "data", Usage: "placeholder as key=value, repeatable"},
					&cli.StringFlag{Name: "data-json", Usage: "placeholders as a JSON object"},
				},
			},
			{
				Name:  "template",
				Usage: "manage dynamic templates",
				Subcommands: []*cli.Command{
					{
						Name:   "create",
						Usage:  "create an empty dynamic template",
						Action: a.createTemplate,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "name", Required: true},
						},
					},
					{
						Name:   "get",
						Usage:  "show a template and its versions",
						Action: a.getTemplate,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "id", Required: true},
						},
					},
					{
						Name:   "list",
						Usage:  "list dynamic templates",
						Action: a.listTemplates,
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "page-size", Value: 50},
							&cli.StringFlag{Name: "page-token"},
						},
					},
					{
						Name:   "update",
						Usage:  "add a new active version to a template",
						Action: a.updateTemplate,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "id", Required: true},
							&cli.StringFlag{Name: "name", Required: true},
							&cli.StringFlag{Name: "subject", Required: true},
							&cli.StringFlag{Name: "html"},
							&cli.StringFlag{Name: "html-file"},
							&cli.StringFlag{Name: "plain"},
							&cli.StringFlag{Name: "plain-file"},
						},
					},
				},
			},
		},
	}
}

func run(ctx context.Context, args []string, cfg Config) error {
	return newApp(cfg).RunContext(ctx, args)
}
