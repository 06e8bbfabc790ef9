package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/dangvanduc1999/doffy-inject/libs/core"
	loggermw "github.com/dangvanduc1999/doffy-inject/libs/middlewares/logger"
)

type greeter struct {
	prefix string
}

func newGreeter(prefix string) *greeter {
	return &greeter{prefix: prefix}
}

func (g *greeter) greet(name string) string {
	return fmt.Sprintf("%s, %s!", g.prefix, name)
}

func main() {
	// .env is optional; real environment variables win either way
	_ = godotenv.Load()

	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		mode = gin.DebugMode
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "3037"
	}
	prefix := os.Getenv("GREETING_PREFIX")
	if prefix == "" {
		prefix = "Hello"
	}

	root := core.New()
	root.ApplyMiddleware(loggermw.New(core.DefaultLogger()))

	services := core.NewContainerModule(func(b *core.ModuleBinder) error {
		b.Bind("GreetingPrefix").ToConstantValue(prefix)
		b.Bind("Greeter").ToDynamicValue(func(ctx *core.Context) (interface{}, error) {
			cfg, err := ctx.Container.Get("GreetingPrefix")
			if err != nil {
				return nil, err
			}
			return newGreeter(cfg.(string)), nil
		}).InSingletonScope()
		return nil
	})
	if err := root.Load(services); err != nil {
		panic(err)
	}

	gin.SetMode(mode)
	router := gin.Default()

	// Every request gets a child container: request handlers can shadow
	// root bindings without touching shared state
	router.Use(func(c *gin.Context) {
		child := root.CreateChild()
		child.Bind("RequestID").ToConstantValue(c.GetHeader("X-Request-ID"))
		c.Set("container", child)
		c.Next()
	})

	router.GET("/greet/:name", func(c *gin.Context) {
		container := c.MustGet("container").(*core.Container)

		g, err := core.Typed[*greeter](container, "Greeter")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		requestID, _ := container.Get("RequestID")

		c.JSON(http.StatusOK, gin.H{
			"message":    g.greet(c.Param("name")),
			"request_id": requestID,
		})
	})

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err.Error())
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Println("Server forced to shutdown:", err.Error())
	}

	fmt.Println("Server exiting")
}
