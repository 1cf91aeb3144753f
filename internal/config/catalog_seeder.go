package config

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
)

// SeedCatalogData seeds the base categorias. Existing rows are left alone.
func SeedCatalogData(db *gorm.DB) error {
	categorias := []models.Categoria{
		{Nombre: "Ciencias de la Computación", Descripcion: "Programación, algoritmos y sistemas", Activo: true},
		{Nombre: "Matemáticas", Descripcion: "Álgebra, cálculo y estadística", Activo: true},
		{Nombre: "Ingeniería", Descripcion: "Ingenierías civil, eléctrica e industrial", Activo: true},
		{Nombre: "Humanidades", Descripcion: "Literatura, historia y filosofía", Activo: true},
		{Nombre: "Referencia", Descripcion: "Diccionarios, enciclopedias y manuales", Activo: true},
	}

	for _, c := range categorias {
		c := c
		var existing models.Categoria
		err := db.Where("nombre = ?", c.Nombre).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&c).Error; err != nil {
			return err
		}
		log.Debug().Str("nombre", c.Nombre).Msg("categoria created")
	}

	log.Info().Msg("catalog data seeded")
	return nil
}
