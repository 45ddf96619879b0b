package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/0xsouravm/solpm/auth"
	"github.com/0xsouravm/solpm/errors"
	"github.com/0xsouravm/solpm/registry"
)

var loginToken string

// LoginCmd validates a registry API token and stores it encrypted.
var LoginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"l"},
	Short:   "Authenticate with a Registry API token",
	Long: `Authenticate with the registry.

The token is verified against the registry, then encrypted with a
password of your choosing and stored in ~/.solpm/credentials.json. The
password is only needed again when publishing.

Examples:
  solpm login --token spr_xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx
  solpm login   (interactive prompt for token)`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	LoginCmd.Flags().StringVar(&loginToken, "token", "", "Registry API token (starts with 'spr_')")
}

func runLogin(cmd *cobra.Command, args []string) error {
	pterm.DefaultSection.Println("Registry API Token Required")
	pterm.Println("To publish programs you need an API token from the registry.")
	pterm.Println("Sign in to the registry, create a token with the 'publish:programs'")
	pterm.Println("permission, and copy it here (tokens start with 'spr_').")
	pterm.Println()

	token := strings.TrimSpace(loginToken)
	if token == "" {
		input, _ := pterm.DefaultInteractiveTextInput.Show("Enter your Registry API Token")
		token = strings.TrimSpace(input)
	}
	if token == "" {
		return errors.New("token is required")
	}
	if !auth.ValidTokenFormat(token) {
		return errors.Wrap(errors.ErrUploadFailed,
			"invalid API token format. Registry API tokens should start with 'spr_'")
	}

	spinner, _ := pterm.DefaultSpinner.Start("Validating token...")
	valid, err := registryClient().VerifyToken(token)
	if err != nil {
		spinner.Fail()
		return err
	}
	spinner.Stop()

	if !valid {
		return errors.Wrap(errors.ErrUploadFailed,
			"token verification failed or token lacks the 'publish:programs' permission")
	}

	pterm.DefaultSection.Println("Encryption Password Setup")
	pterm.Println("To secure your API token, create an encryption password.")
	pterm.Println("You will need this password when publishing programs.")

	password, _ := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Enter encryption password")
	if strings.TrimSpace(password) == "" {
		return errors.New("password cannot be empty")
	}
	confirm, _ := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Confirm encryption password")
	if password != confirm {
		return errors.New("passwords do not match")
	}

	creds, err := auth.EncryptToken(token, password)
	if err != nil {
		return err
	}
	if err := creds.Save(); err != nil {
		return err
	}

	path, _ := auth.CredentialsPath()
	pterm.Success.Println("Successfully authenticated with API token")
	pterm.Info.Printfln("Encrypted credentials saved to: %s", path)
	pterm.Info.Println("Remember your encryption password - you'll need it when publishing programs!")

	return nil
}

// ensureAuthenticated loads the stored token, prompting for the
// encryption password, and confirms it is still accepted by the
// registry.
func ensureAuthenticated(client *registry.Client) (string, error) {
	if !auth.HasStoredCredentials() {
		return "", errors.NewConfigNotFoundError("not logged in. Please run 'solpm login' first.")
	}

	creds, err := auth.Load()
	if err != nil {
		return "", err
	}
	if creds == nil {
		return "", errors.NewConfigNotFoundError("not logged in. Please run 'solpm login' first.")
	}

	pterm.Info.Println("Authentication required")
	password, _ := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Enter your encryption password")

	token, err := creds.DecryptToken(password)
	if err != nil {
		return "", err
	}

	valid, err := client.VerifyToken(token)
	if err != nil {
		return "", err
	}
	if !valid {
		return "", errors.NewConfigNotFoundError("token is invalid or expired. Please run 'solpm login' again.")
	}
	return token, nil
}
