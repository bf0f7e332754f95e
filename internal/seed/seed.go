// Package seed 从 YAML 夹具导入基础数据（国家、大项），可重复执行
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"OlympicsHub/internal/model"
	"OlympicsHub/internal/repository"
	"OlympicsHub/internal/service"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// File 对应 config/seed.yaml
type File struct {
	Countries []Country `yaml:"countries"`
	Sports    []Sport   `yaml:"sports"`
}

type Country struct {
	Name    string `yaml:"name"`
	Code    string `yaml:"code"`
	FlagURL string `yaml:"flag_url"`
}

type Sport struct {
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

// Report 导入结果
type Report struct {
	Countries     int
	SportsCreated int
	SportsUpdated int
}

// Load 读取并解析夹具文件
func Load(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("读取夹具文件失败: %w", err)
	}
	return Parse(data)
}

// Parse 解析并校验夹具内容
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("解析夹具 YAML 失败: %w", err)
	}
	for i, c := range f.Countries {
		code, err := service.NormalizeCountryCode(c.Code)
		if err != nil {
			return nil, fmt.Errorf("countries[%d] %q: %w", i, c.Name, err)
		}
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("countries[%d]: name is required", i)
		}
		f.Countries[i].Code = code
	}
	for i, s := range f.Sports {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("sports[%d]: name is required", i)
		}
	}
	return &f, nil
}

// Seeder 国家按 code upsert，大项按名称新建或更新图标
type Seeder struct {
	countries repository.CountryRepository
	sports    repository.SportRepository
	logger    *logrus.Logger
}

func NewSeeder(db *gorm.DB, logger *logrus.Logger) *Seeder {
	return &Seeder{
		countries: repository.NewCountryRepository(db),
		sports:    repository.NewSportRepository(db),
		logger:    logger,
	}
}

func (s *Seeder) Apply(ctx context.Context, f *File) (*Report, error) {
	report := &Report{}
	for _, c := range f.Countries {
		country := &model.Country{
			Name:    strings.TrimSpace(c.Name),
			Code:    c.Code,
			FlagURL: optional(c.FlagURL),
		}
		if err := s.countries.UpsertCountryByCode(ctx, country); err != nil {
			return report, fmt.Errorf("导入国家 %s 失败: %w", c.Code, err)
		}
		report.Countries++
	}

	for _, sp := range f.Sports {
		name := strings.TrimSpace(sp.Name)
		existing, err := s.sports.GetSportByName(ctx, name)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := s.sports.CreateSport(ctx, &model.Sport{Name: name, Icon: optional(sp.Icon)}); err != nil {
				return report, fmt.Errorf("导入大项 %s 失败: %w", name, err)
			}
			report.SportsCreated++
		case err != nil:
			return report, fmt.Errorf("查询大项 %s 失败: %w", name, err)
		default:
			existing.Icon = optional(sp.Icon)
			if err := s.sports.UpdateSport(ctx, existing); err != nil {
				return report, fmt.Errorf("更新大项 %s 失败: %w", name, err)
			}
			report.SportsUpdated++
		}
	}

	s.logger.WithFields(logrus.Fields{
		"countries":      report.Countries,
		"sports_created": report.SportsCreated,
		"sports_updated": report.SportsUpdated,
	}).Info("基础数据导入完成")
	return report, nil
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
