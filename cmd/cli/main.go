package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gowallet-cli",
		Short: "gowallet CLI tool",
		Long:  `A command line interface for interacting with the gowallet API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the gowallet API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var createName string
	var createBalance string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := decimal.NewFromString(createBalance)
			if err != nil {
				return fmt.Errorf("invalid balance: %w", err)
			}

			return post("/api/v1/accounts", map[string]any{
				"name":            createName,
				"initial_balance": balance,
			})
		},
	}
	createCmd.Flags().StringVar(&createName, "name", "", "Account name")
	createCmd.Flags().StringVar(&createBalance, "balance", "0", "Initial balance")
	createCmd.MarkFlagRequired("name")

	getCmd := &cobra.Command{
		Use:   "get <account-id>",
		Short: "Show an account's balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return get("/api/v1/accounts/" + args[0])
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return get("/api/v1/accounts")
		},
	}

	accountCmd.AddCommand(createCmd, getCmd, listCmd)

	transferCmd := &cobra.Command{
		Use:   "transfer <from-id> <to-id> <amount>",
		Short: "Move funds between two accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid amount: %w", err)
			}

			return post("/api/v1/transfers", map[string]any{
				"from_account_id": args[0],
				"to_account_id":   args[1],
				"amount":          amount,
			})
		},
	}

	var historyLimit int

	historyCmd := &cobra.Command{
		Use:   "history <account-id>",
		Short: "Show an account's transfers, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return get(fmt.Sprintf("/api/v1/accounts/%s/transfers?limit=%d", args[0], historyLimit))
		},
	}
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum number of records")

	rootCmd.AddCommand(accountCmd, transferCmd, historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string) error {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(baseURL + path)
	if err != nil {
		return err
	}

	return render(resp)
}

func post(path string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: timeout}

	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}

	return render(resp)
}

func render(resp *http.Response) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		pretty.Write(body)
	}

	fmt.Println(pretty.String())

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	return nil
}
