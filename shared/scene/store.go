// Package scene persiste o estado das sessões dos demos em SQLite: as peças
// travadas no mundo (blocos) e o progresso do ritual (jardim).
package scene

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"TetraVision/shared/geom"
	"TetraVision/shared/pose"
	"TetraVision/shared/ritual"
)

// PlacementModel é o esquema de uma peça travada no banco.
type PlacementModel struct {
	ID        uint `gorm:"primaryKey"`
	Kind      int
	PosX      float32
	PosY      float32
	PosZ      float32
	QW        float32
	QX        float32
	QY        float32
	QZ        float32
	CreatedAt time.Time
}

// RitualModel guarda o progresso do jardim. Linha única (ID=1).
type RitualModel struct {
	ID          uint `gorm:"primaryKey"`
	Planted     bool
	HitCount    int
	RoseGold    bool
	CrocusGold  bool
	AnemoneGold bool
	WasReverted bool
	UpdatedAt   time.Time
}

// Placement é uma peça travada já desserializada.
type Placement struct {
	Kind geom.PieceKind
	Pose pose.Pose
}

// Store encapsula o banco da sessão.
type Store struct {
	DB *gorm.DB
}

// Open abre (ou cria) o banco SQLite e roda as migrações.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	// Logger silencioso: o banco roda dentro do frame loop dos demos.
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no SQLite: %w", err)
	}

	if err := db.AutoMigrate(&PlacementModel{}, &RitualModel{}); err != nil {
		return nil, fmt.Errorf("falha na migração do banco: %w", err)
	}

	log.Printf("[Scene] Banco de dados SQLite aberto: %s", dbPath)
	return &Store{DB: db}, nil
}

// Close fecha a conexão com o banco.
func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SavePlacement registra uma peça travada com sua pose de mundo.
func (s *Store) SavePlacement(kind geom.PieceKind, p pose.Pose) error {
	if s == nil || s.DB == nil {
		return fmt.Errorf("banco de dados não inicializado")
	}
	model := PlacementModel{
		Kind: int(kind),
		PosX: p.Pos.X(), PosY: p.Pos.Y(), PosZ: p.Pos.Z(),
		QW: p.Rot.W, QX: p.Rot.V.X(), QY: p.Rot.V.Y(), QZ: p.Rot.V.Z(),
	}
	if err := s.DB.Create(&model).Error; err != nil {
		log.Printf("[Scene] ERRO ao salvar peça travada: %v", err)
		return err
	}
	return nil
}

// Placements carrega todas as peças travadas, na ordem de criação.
func (s *Store) Placements() ([]Placement, error) {
	if s == nil || s.DB == nil {
		return nil, fmt.Errorf("banco de dados não inicializado")
	}
	var models []PlacementModel
	if err := s.DB.Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]Placement, 0, len(models))
	for _, m := range models {
		out = append(out, Placement{
			Kind: geom.PieceKind(m.Kind),
			Pose: pose.New(
				mgl32.Vec3{m.PosX, m.PosY, m.PosZ},
				mgl32.Quat{W: m.QW, V: mgl32.Vec3{m.QX, m.QY, m.QZ}},
			),
		})
	}
	return out, nil
}

// ClearPlacements apaga todas as peças travadas (reset da cena).
func (s *Store) ClearPlacements() error {
	if s == nil || s.DB == nil {
		return fmt.Errorf("banco de dados não inicializado")
	}
	return s.DB.Where("1 = 1").Delete(&PlacementModel{}).Error
}

// SaveRitual grava o progresso do jardim (upsert da linha única).
func (s *Store) SaveRitual(snap ritual.Snapshot) error {
	if s == nil || s.DB == nil {
		return fmt.Errorf("banco de dados não inicializado")
	}
	model := RitualModel{
		ID:          1,
		Planted:     snap.Planted,
		HitCount:    snap.HitCount,
		RoseGold:    snap.Gold[ritual.FlowerRose],
		CrocusGold:  snap.Gold[ritual.FlowerCrocus],
		AnemoneGold: snap.Gold[ritual.FlowerAnemone],
		WasReverted: snap.WasReverted,
	}
	if err := s.DB.Save(&model).Error; err != nil {
		log.Printf("[Scene] ERRO ao salvar progresso do ritual: %v", err)
		return err
	}
	return nil
}

// LoadRitual recupera o progresso salvo. found=false se nunca houve save.
func (s *Store) LoadRitual() (ritual.Snapshot, bool, error) {
	var snap ritual.Snapshot
	if s == nil || s.DB == nil {
		return snap, false, fmt.Errorf("banco de dados não inicializado")
	}

	var model RitualModel
	if err := s.DB.First(&model, "id = ?", 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return snap, false, nil
		}
		return snap, false, err
	}

	snap.Planted = model.Planted
	snap.HitCount = model.HitCount
	snap.WasReverted = model.WasReverted
	snap.Gold[ritual.FlowerRose] = model.RoseGold
	snap.Gold[ritual.FlowerCrocus] = model.CrocusGold
	snap.Gold[ritual.FlowerAnemone] = model.AnemoneGold
	return snap, true, nil
}
