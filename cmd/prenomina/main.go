// cmd/prenomina/main.go
package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"prenomina-service/internal/api/handlers"
	"prenomina-service/internal/api/responses"
	"prenomina-service/internal/config"
	"prenomina-service/internal/core/prenomina"
)

func main() {
	logger := responses.InitLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuración inválida: ", err)
	}
	fechaDefecto, _ := cfg.FechaReferenciaDefecto()

	gin.SetMode(cfg.GinMode)

	prenominaService := prenomina.NewService(logger)
	prenominaHandler := handlers.NewPrenominaHandler(prenominaService, fechaDefecto, logger)

	router := gin.Default()

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/prenomina/preview", prenominaHandler.HandlePreview)
		apiV1.POST("/prenomina/workbook", prenominaHandler.HandleWorkbook)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": "prenomina-service"})
	})

	log.Printf("🚀 Prenómina Service (Go) iniciado y escuchando en el puerto %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Fallo al iniciar el servidor de pre-nómina: ", err)
	}
}
