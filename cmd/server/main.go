package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"inventory_console/internal/config"
	"inventory_console/internal/gateway"
	"inventory_console/internal/inventory"
	"inventory_console/internal/localstore"
	"inventory_console/internal/router"
	"inventory_console/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 本地键值存储：sqlite 文件（默认）或 redis，扮演浏览器 localStorage。
	var disk localstore.Store
	switch cfg.LocalStore {
	case config.LocalStoreRedis:
		rdb := rd.NewClient(&rd.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		defer rdb.Close()
		disk = localstore.NewRedis(rdb)
	default:
		db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		if err := db.AutoMigrate(&localstore.KVEntry{}); err != nil {
			log.Fatalf("db migrate: %v", err)
		}
		disk = localstore.NewSQLite(db)
	}

	// 两个远端协作方的网关共用一个带超时的 http.Client。
	hc := &http.Client{Timeout: cfg.HTTPTimeout}
	products := store.NewProductStore(gateway.NewProductGateway(hc, cfg.ProductsAPIBase))
	orders := store.NewOrderStore(gateway.NewOrderGateway(hc, cfg.OrdersAPIBase, gateway.OrderHeaders{
		BranchID:       cfg.OrdersBranchID,
		FacilityID:     cfg.OrdersFacilityID,
		AcceptLanguage: cfg.OrdersAcceptLanguage,
	}))

	core, err := inventory.New(ctx, products, orders, disk)
	if err != nil {
		log.Fatalf("load local orders: %v", err)
	}

	// 启动时先拉一次；远端暂不可用不影响启动，console 先用已有数据工作。
	if err := core.Refresh(ctx); err != nil {
		log.Printf("initial refresh: %v", err)
	}
	if cfg.RefreshInterval > 0 {
		go core.RunAutoRefresh(ctx, cfg.RefreshInterval)
	}

	r := gin.Default()
	router.Setup(r, core, cfg)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	log.Printf("console listening at %s (local store: %s)", cfg.HTTPAddr, cfg.LocalStore)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %v", err)
	}
}
