package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/automationmc/vaultcc/internal/di"
	"github.com/automationmc/vaultcc/internal/economy/vault"
	"github.com/automationmc/vaultcc/internal/host"
	"github.com/automationmc/vaultcc/internal/kit/bootstrap"
)

func main() {
	// 1. 初始化 App (載入 Config, Logger)
	app := bootstrap.NewApp("vaultcc")
	ctx := context.Background()

	// 2. 建立 Host 環境 (外掛目錄與服務目錄)
	services := host.NewServicesManager()
	plugins := host.NewPluginManager(app.Logger)

	// 3. 掛載外掛：Vault 橋接標記 + 依設定選擇的經濟 provider 後端
	econPlugin, cleanup, err := di.ProvideEconomyPlugin(app.Config, services)
	if err != nil {
		slog.Error("Failed to initialize economy backend", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := plugins.Register(host.NewBasePlugin(vault.PluginVault)); err != nil {
		slog.Error("Failed to register Vault plugin", "error", err)
		os.Exit(1)
	}
	if err := plugins.Register(econPlugin); err != nil {
		slog.Error("Failed to register economy plugin", "error", err)
		os.Exit(1)
	}

	plugins.EnableAll(ctx)

	// 4. 啟動並在「伺服器啟動完成」後跑一次示範流程
	app.Run(func() error {
		onServerStarted(ctx, app, plugins, services)
		return nil
	}, func() {
		plugins.DisableAll(ctx)
	})
}

// onServerStarted 對應伺服器啟動完成事件：
// 建立 Vault 橋接並示範 查詢餘額 -> 存款 -> 再查詢餘額。
func onServerStarted(ctx context.Context, app *bootstrap.App, plugins *host.PluginManager, services *host.ServicesManager) {
	slog.Info("Running Vault CC Integration")

	registry := di.ProvidePlayerRegistry()
	manager := vault.NewManager(plugins, services, registry, app.Logger)

	player := app.Config.Demo.Player
	amount := app.Config.Demo.DepositAmount

	bal := manager.GetPlayerBalance(ctx, player)
	slog.Info("Player balance", "player", player, "balance", bal.Balance)

	if resp := manager.DepositPlayer(ctx, player, amount); !resp.Success {
		slog.Error("Deposit failed", "player", player, "error", resp.ErrorMessage)
	}

	bal = manager.GetPlayerBalance(ctx, player)
	slog.Info("Player balance after deposit",
		"player", player,
		"balance", bal.Balance,
		"formatted", manager.Format(bal.Balance),
	)
}
