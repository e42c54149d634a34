package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tstruk/spg/curve"
	"github.com/tstruk/spg/ecdsa"
	"github.com/tstruk/spg/eckey"
	"github.com/tstruk/spg/entropy"
	"github.com/tstruk/spg/envelope"
	"github.com/tstruk/spg/fileenc"
	"github.com/tstruk/spg/symcipher"
)

var (
	verbose bool
	timing  bool

	timingStart time.Time
)

// defaultDir returns $HOME/.spg, creating it with 0700 permissions if it
// doesn't yet exist (§5: keys live under the user's home by default).
func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	dir := filepath.Join(home, ".spg")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return dir, nil
}

// resolveKeyPath returns path if non-empty, otherwise $HOME/.spg/<name>
// (§6: default private/public key locations under the home directory).
func resolveKeyPath(path, name string) (string, error) {
	if path != "" {
		return path, nil
	}
	dir, err := defaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func orchestrator() *entropy.Orchestrator {
	if !verbose {
		return nil
	}
	return &entropy.Orchestrator{Out: os.Stdout}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "spg",
		Short: "Small Privacy Guard: ECC key management, signing and file encryption",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "show progress while collecting entropy")
	root.PersistentFlags().BoolVarP(&timing, "timing", "t", false, "print elapsed time for the operation")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		timingStart = time.Now()
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if timing {
			fmt.Fprintf(os.Stderr, "elapsed: %s\n", time.Since(timingStart))
		}
	}

	root.AddCommand(
		newGenKeyCmd(),
		newExportCmd(),
		newSignCmd(),
		newVerifyCmd(),
		newEncryptCmd(),
		newDecryptCmd(),
		newListCurvesCmd(),
		newListSymCiphersCmd(),
	)
	return root
}

func newGenKeyCmd() *cobra.Command {
	var curveName, out string
	cmd := &cobra.Command{
		Use:   "gen_key",
		Short: "generate a new private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := eckey.GenerateKey(curveName, orchestrator())
			if err != nil {
				return err
			}
			defer priv.Release()

			path, err := resolveKeyPath(out, "spg_priv.key")
			if err != nil {
				return err
			}
			return os.WriteFile(path, envelope.EncodePrivateKey(priv), 0600)
		},
	}
	cmd.Flags().StringVarP(&curveName, "curve", "c", "secp160r2", "named curve to generate the key on")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default $HOME/.spg/spg_priv.key)")
	return cmd
}

func newExportCmd() *cobra.Command {
	var keyPath, out string
	cmd := &cobra.Command{
		Use:   "xport",
		Short: "export the public key half of a private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := resolveKeyPath(keyPath, "spg_priv.key")
			if err != nil {
				return err
			}
			data, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			priv, err := envelope.DecodePrivateKey(data)
			if err != nil {
				return err
			}
			defer priv.Release()

			path, err := resolveKeyPath(out, "spg_pub.key")
			if err != nil {
				return err
			}
			return os.WriteFile(path, envelope.EncodePublicKey(priv.Pub), 0600)
		},
	}
	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "path to the private key (default $HOME/.spg/spg_priv.key)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default $HOME/.spg/spg_pub.key)")
	return cmd
}

func newSignCmd() *cobra.Command {
	var keyPath, out string
	cmd := &cobra.Command{
		Use:   "sign [message]",
		Short: "sign a message with a private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := resolveKeyPath(keyPath, "spg_priv.key")
			if err != nil {
				return err
			}
			data, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			priv, err := envelope.DecodePrivateKey(data)
			if err != nil {
				return err
			}
			defer priv.Release()

			sig, err := ecdsa.Sign(priv, []byte(args[0]), nil)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				dir, err := defaultDir()
				if err != nil {
					return err
				}
				path = filepath.Join(dir, "signature.pem")
			}
			return os.WriteFile(path, envelope.EncodeSignature(sig), 0600)
		},
	}
	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "path to the private key (default $HOME/.spg/spg_priv.key)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default $HOME/.spg/signature.pem)")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	var keyPath, sigPath string
	cmd := &cobra.Command{
		Use:   "verify [message]",
		Short: "verify a signature against a public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyIn, err := resolveKeyPath(keyPath, "spg_pub.key")
			if err != nil {
				return err
			}
			keyData, err := os.ReadFile(keyIn)
			if err != nil {
				return err
			}
			pub, err := envelope.DecodePublicKey(keyData)
			if err != nil {
				return err
			}

			sigData, err := os.ReadFile(sigPath)
			if err != nil {
				return err
			}
			sig, err := envelope.DecodeSignature(sigData)
			if err != nil {
				return err
			}

			ok, err := ecdsa.Verify(pub, sig, []byte(args[0]))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("signature does not verify")
			}
			fmt.Println("signature OK")
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "path to the public key (default $HOME/.spg/spg_pub.key)")
	cmd.Flags().StringVarP(&sigPath, "sig", "i", "", "path to the signature (required)")
	cmd.MarkFlagRequired("sig")
	return cmd
}

func newEncryptCmd() *cobra.Command {
	var keyPath string
	cmd := &cobra.Command{
		Use:   "encrypt [file]",
		Short: "encrypt a file for a public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := resolveKeyPath(keyPath, "spg_pub.key")
			if err != nil {
				return err
			}
			data, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			pub, err := envelope.DecodePublicKey(data)
			if err != nil {
				return err
			}
			return fileenc.Encrypt(pub, args[0], args[0]+".enc")
		},
	}
	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "path to the public key (default $HOME/.spg/spg_pub.key)")
	return cmd
}

func newDecryptCmd() *cobra.Command {
	var keyPath, out string
	cmd := &cobra.Command{
		Use:   "decrypt [file]",
		Short: "decrypt a file with a private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := resolveKeyPath(keyPath, "spg_priv.key")
			if err != nil {
				return err
			}
			data, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			priv, err := envelope.DecodePrivateKey(data)
			if err != nil {
				return err
			}
			defer priv.Release()

			path := out
			if path == "" {
				trimmed, err := trimEncSuffix(args[0])
				if err != nil {
					return err
				}
				path = trimmed
			}
			if path == args[0] {
				return fmt.Errorf("input and output paths must differ: %s", path)
			}
			return fileenc.Decrypt(priv, args[0], path)
		},
	}
	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "path to the private key (default $HOME/.spg/spg_priv.key)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: input path with .enc trimmed)")
	return cmd
}

// trimEncSuffix derives the default decrypt output path by stripping the
// ".enc" suffix from path, failing if it isn't present (§4.H.2).
func trimEncSuffix(path string) (string, error) {
	const suffix = ".enc"
	if len(path) <= len(suffix) || path[len(path)-len(suffix):] != suffix {
		return "", fmt.Errorf("input file %q has no .enc suffix; pass -o explicitly", path)
	}
	return path[:len(path)-len(suffix)], nil
}

func newListCurvesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list_curves",
		Short: "list the supported named curves",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range curve.List() {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func newListSymCiphersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list_sym_ciphers",
		Short: "list the registered symmetric ciphers",
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, name := range symcipher.List() {
				fmt.Printf("%d. %s\n", i, name)
			}
			return nil
		},
	}
}
