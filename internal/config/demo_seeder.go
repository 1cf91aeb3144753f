package config

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
)

// SeedDemoData seeds a small borrowable catalog for development: one reader,
// one author and one bibliographic material with two copies and a virtual
// record. It runs once; a present demo material skips it.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MaterialBibliografico{}).Where("codigo = ?", "DEMO-001").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var categoria models.Categoria
		if err := tx.Order("id ASC").First(&categoria).Error; err != nil {
			return err
		}

		lector := &models.Lector{
			Codigo:    "20240001",
			Nombres:   "María",
			Apellidos: "Quispe Huamán",
			Email:     "mquispe@demo.edu.pe",
			Tipo:      string(domain.LectorEstudiante),
			Activo:    true,
		}
		if err := tx.Create(lector).Error; err != nil {
			return err
		}

		autor := &models.Autor{Nombre: "Niklaus Wirth", Nacionalidad: "Suiza", Activo: true}
		if err := tx.Create(autor).Error; err != nil {
			return err
		}

		material := &models.MaterialBibliografico{
			Codigo:      "DEMO-001",
			Titulo:      "Algoritmos + Estructuras de Datos = Programas",
			CategoriaID: categoria.ID,
			Formato:     string(domain.DeriveFormato(true, true)),
			Activo:      true,
		}
		if err := tx.Create(material).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.AutorMaterial{AutorID: autor.ID, MaterialBibliograficoID: material.ID, Activo: true}).Error; err != nil {
			return err
		}

		fisicos := []models.MaterialFisico{
			{MaterialBibliograficoID: material.ID, CodigoEjemplar: "C101", Estado: string(domain.EstadoDisponible), Ubicacion: "Estante A-1", Activo: true},
			{MaterialBibliograficoID: material.ID, CodigoEjemplar: "C102", Estado: string(domain.EstadoDisponible), Ubicacion: "Estante A-1", Activo: true},
		}
		if err := tx.Create(&fisicos).Error; err != nil {
			return err
		}

		virtual := &models.MaterialVirtual{
			MaterialBibliograficoID: material.ID,
			URL:                     "https://repositorio.demo.edu.pe/demo-001.pdf",
			FormatoArchivo:          "PDF",
			Activo:                  true,
		}
		if err := tx.Create(virtual).Error; err != nil {
			return err
		}

		log.Info().Str("material", material.Codigo).Msg("demo data seeded")
		return nil
	})
}
