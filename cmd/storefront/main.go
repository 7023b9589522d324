// cmd/storefront/main.go

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/veekshithcb/Qkart-Frontend/address"
	"github.com/veekshithcb/Qkart-Frontend/api"
	"github.com/veekshithcb/Qkart-Frontend/auth"
	"github.com/veekshithcb/Qkart-Frontend/cart"
	"github.com/veekshithcb/Qkart-Frontend/checkout"
	"github.com/veekshithcb/Qkart-Frontend/notify"
	"github.com/veekshithcb/Qkart-Frontend/search"
	"github.com/veekshithcb/Qkart-Frontend/sessionstore"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.Level = logrus.DebugLevel
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout
}

func main() {
	ctx := context.Background()

	// ----------------------------------------------------------------
	// 1) OpenTelemetry TracerProvider の初期化
	tp, err := initTracerProvider(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer provider: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Errorf("Error shutting down tracer provider: %v", err)
		}
	}()
	// ----------------------------------------------------------------

	// ----------------------------------------------------------------
	// 2) ISessionStore の生成 (環境変数 SESSION_REDIS_ADDR を参照。
	//    未指定ならインメモリのストアを使う)
	var store sessionstore.ISessionStore
	if redisAddr := os.Getenv("SESSION_REDIS_ADDR"); redisAddr != "" {
		// ポート番号が指定されていない場合のみ追加
		if !strings.Contains(redisAddr, ":") {
			redisAddr = redisAddr + ":6379"
		}
		log.Infof("Using RedisSessionStore with address %s", redisAddr)
		redisStore, err := sessionstore.NewRedisSessionStore(redisAddr)
		if err != nil {
			log.Fatalf("failed to create RedisSessionStore: %v", err)
		}
		store = redisStore
	} else {
		log.Info("SESSION_REDIS_ADDR not set, using LocalSessionStore")
		store = sessionstore.NewLocalSessionStore()
	}
	if err := store.Initialize(ctx); err != nil {
		log.Fatalf("failed to initialize session store: %v", err)
	}
	// ----------------------------------------------------------------

	// ----------------------------------------------------------------
	// 3) API クライアントと各コンポーネントの組み立て
	endpoint := os.Getenv("QKART_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8082"
	}
	log.Infof("Using storefront API endpoint %s", endpoint)

	client := api.NewClient(endpoint)
	session := sessionstore.NewSession(store)
	notifier := notify.NewLogNotifier(log)

	authSvc := auth.NewService(client, session, notifier)
	cartMgr := cart.NewManager(client, notifier)
	addrMgr := address.NewManager(client, notifier)
	orchestrator := checkout.NewOrchestrator(client, session, notifier)

	var products []cart.Product
	runner := search.NewRunner(client, notifier, func(result search.Result) {
		if result.NotFound {
			fmt.Println("No products found")
			return
		}
		products = result.Products
		printProducts(products)
	})
	// ----------------------------------------------------------------

	// 起動時に商品一覧を読み込む
	runner.Perform(ctx, "")

	repl(ctx, replDeps{
		session:      session,
		authSvc:      authSvc,
		cartMgr:      cartMgr,
		addrMgr:      addrMgr,
		orchestrator: orchestrator,
		runner:       runner,
		products:     &products,
	})
}

type replDeps struct {
	session      *sessionstore.Session
	authSvc      *auth.Service
	cartMgr      *cart.Manager
	addrMgr      *address.Manager
	orchestrator *checkout.Orchestrator
	runner       *search.Runner
	products     *[]cart.Product
}

// repl は標準入力からコマンドを読み取り、各コンポーネントに振り分けます。
func repl(ctx context.Context, deps replDeps) {
	fmt.Println("qkart storefront (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		token, err := deps.session.Token(ctx)
		if err != nil {
			log.Errorf("reading session token: %v", err)
			continue
		}

		switch cmd {
		case "help":
			fmt.Println("commands: register <user> <pass> <confirm> | login <user> <pass> | logout")
			fmt.Println("          products | search <query> | cart | add <productId> <qty>")
			fmt.Println("          addresses | addaddr <text...> | deladdr <id> | select <id>")
			fmt.Println("          checkout | balance | quit")
		case "register":
			if len(args) != 3 {
				fmt.Println("usage: register <user> <pass> <confirm>")
				continue
			}
			deps.authSvc.Register(ctx, args[0], args[1], args[2])
		case "login":
			if len(args) != 2 {
				fmt.Println("usage: login <user> <pass>")
				continue
			}
			if ok, _ := deps.authSvc.Login(ctx, args[0], args[1]); ok {
				deps.cartMgr.Refresh(ctx, mustToken(ctx, deps.session))
				deps.addrMgr.Refresh(ctx, mustToken(ctx, deps.session))
			}
		case "logout":
			if err := deps.authSvc.Logout(ctx); err != nil {
				log.Errorf("logout: %v", err)
			}
		case "products":
			deps.runner.Perform(ctx, "")
		case "search":
			deps.runner.Search(ctx, strings.Join(args, " "))
		case "cart":
			rows, err := deps.cartMgr.Refresh(ctx, token)
			if err != nil {
				continue
			}
			printCart(rows, *deps.products)
		case "add":
			if len(args) != 2 {
				fmt.Println("usage: add <productId> <qty>")
				continue
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Println("qty must be an integer")
				continue
			}
			deps.cartMgr.AddItem(ctx, token, args[0], qty, qty == 1)
		case "addresses":
			if _, err := deps.addrMgr.Refresh(ctx, token); err != nil {
				continue
			}
			printAddresses(deps.addrMgr.State())
		case "addaddr":
			deps.addrMgr.StartDraft()
			deps.addrMgr.SetDraftText(strings.Join(args, " "))
			deps.addrMgr.Add(ctx, token)
		case "deladdr":
			if len(args) != 1 {
				fmt.Println("usage: deladdr <id>")
				continue
			}
			deps.addrMgr.Delete(ctx, token, args[0])
		case "select":
			if len(args) != 1 {
				fmt.Println("usage: select <id>")
				continue
			}
			deps.addrMgr.Select(args[0])
		case "checkout":
			outcome, err := deps.orchestrator.Checkout(ctx, deps.cartMgr.Rows(), *deps.products, deps.addrMgr.State())
			if err != nil {
				log.Errorf("checkout: %v", err)
				continue
			}
			if outcome.State == checkout.StateDone {
				fmt.Printf("Order placed! New balance: %.2f\n", outcome.NewBalance)
			}
		case "balance":
			balance, err := deps.session.Balance(ctx)
			if err != nil {
				log.Errorf("reading balance: %v", err)
				continue
			}
			fmt.Printf("Wallet balance: %.2f\n", balance)
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q (type 'help')\n", cmd)
		}
	}
}

func mustToken(ctx context.Context, session *sessionstore.Session) string {
	token, err := session.Token(ctx)
	if err != nil {
		log.Errorf("reading session token: %v", err)
		return ""
	}
	return token
}

func printProducts(products []cart.Product) {
	for _, p := range products {
		fmt.Printf("%-20s %-24s %-12s $%-8.2f %d/5\n", p.ID, p.Name, p.Category, p.Cost, p.Rating)
	}
}

func printCart(rows []cart.Row, catalog []cart.Product) {
	items := cart.ResolveLineItems(rows, catalog)
	for _, item := range items {
		fmt.Printf("%-24s x%-3d $%.2f\n", item.Name, item.Qty, item.Cost*float64(item.Qty))
	}
	fmt.Printf("Order total: $%.2f (%d items)\n", cart.TotalValue(items), cart.TotalUnits(items))
}

func printAddresses(state address.State) {
	for _, a := range state.All {
		marker := " "
		if a.ID == state.SelectedID {
			marker = "*"
		}
		fmt.Printf("%s %-36s %s\n", marker, a.ID, a.Text)
	}
}

// initTracerProvider は OpenTelemetry の TracerProvider を初期化し、OTLP エクスポーターを設定します。
// 環境変数 OTEL_EXPORTER_OTLP_ENDPOINT で Collector のエンドポイントを指定。
func initTracerProvider(ctx context.Context) (*sdktrace.TracerProvider, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:4317"
	}
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String("storefront"),
			semconv.ServiceVersionKey.String("v1.0.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	bsp := sdktrace.NewBatchSpanProcessor(exporter)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp, nil
}
