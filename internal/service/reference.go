package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"OlympicsHub/internal/model"
	"OlympicsHub/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReferenceService 国家与大项的维护
type ReferenceService struct {
	countries repository.CountryRepository
	sports    repository.SportRepository
	logger    *logrus.Logger
}

func NewReferenceService(countries repository.CountryRepository, sports repository.SportRepository, logger *logrus.Logger) *ReferenceService {
	return &ReferenceService{countries: countries, sports: sports, logger: logger}
}

// CountryRequest 新建/编辑国家
type CountryRequest struct {
	Name    string  `json:"name"`
	Code    string  `json:"code"`
	FlagURL *string `json:"flag_url"`
}

// SportRequest 新建/编辑大项
type SportRequest struct {
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

// NormalizeCountryCode 去空白转大写，必须是 3 个 ASCII 字母
func NormalizeCountryCode(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 3 {
		return "", invalid("code", "must be exactly 3 letters")
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", invalid("code", "must be exactly 3 letters")
		}
	}
	return c, nil
}

func (req CountryRequest) toModel() (*model.Country, error) {
	name, err := required("name", req.Name)
	if err != nil {
		return nil, err
	}
	code, err := NormalizeCountryCode(req.Code)
	if err != nil {
		return nil, err
	}
	return &model.Country{Name: name, Code: code, FlagURL: trimmed(req.FlagURL)}, nil
}

func (s *ReferenceService) ListCountries(ctx context.Context) ([]*model.Country, error) {
	return s.countries.ListCountries(ctx)
}

func (s *ReferenceService) GetCountry(ctx context.Context, id uint64) (*model.Country, error) {
	c, err := s.countries.GetCountry(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "country", id)
	}
	return c, nil
}

func (s *ReferenceService) GetCountryByCode(ctx context.Context, code string) (*model.Country, error) {
	normalized, err := NormalizeCountryCode(code)
	if err != nil {
		return nil, err
	}
	c, err := s.countries.GetCountryByCode(ctx, normalized)
	if err != nil {
		return nil, notFoundOr(err, "country", normalized)
	}
	return c, nil
}

// ensureCodeFree code 已被其他国家占用时返回 ConflictError
func (s *ReferenceService) ensureCodeFree(ctx context.Context, code string, selfID uint64) error {
	existing, err := s.countries.GetCountryByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return conflict("country code %s already exists", code)
	}
	return nil
}

func (s *ReferenceService) CreateCountry(ctx context.Context, req CountryRequest) (*model.Country, error) {
	c, err := req.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.ensureCodeFree(ctx, c.Code, 0); err != nil {
		return nil, err
	}
	if err := s.countries.CreateCountry(ctx, c); err != nil {
		if isDuplicateKey(err) {
			return nil, conflict("country code %s already exists", c.Code)
		}
		return nil, fmt.Errorf("创建国家失败: %w", err)
	}
	return c, nil
}

func (s *ReferenceService) UpdateCountry(ctx context.Context, id uint64, req CountryRequest) (*model.Country, error) {
	if _, err := s.GetCountry(ctx, id); err != nil {
		return nil, err
	}
	c, err := req.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.ensureCodeFree(ctx, c.Code, id); err != nil {
		return nil, err
	}
	c.ID = id
	if err := s.countries.UpdateCountry(ctx, c); err != nil {
		if isDuplicateKey(err) {
			return nil, conflict("country code %s already exists", c.Code)
		}
		return nil, fmt.Errorf("更新国家失败: %w", err)
	}
	return s.GetCountry(ctx, id)
}

// DeleteCountry 仍被奖牌/对阵/成绩/报名引用时拒绝删除
func (s *ReferenceService) DeleteCountry(ctx context.Context, id uint64) error {
	if _, err := s.GetCountry(ctx, id); err != nil {
		return err
	}
	refs, err := s.countries.CountCountryReferences(ctx, id)
	if err != nil {
		return fmt.Errorf("统计国家引用失败: %w", err)
	}
	if refs > 0 {
		return conflict("country %d is still referenced by %d record(s)", id, refs)
	}
	if _, err := s.countries.DeleteCountry(ctx, id); err != nil {
		return fmt.Errorf("删除国家失败: %w", err)
	}
	s.logger.WithField("country_id", id).Info("国家已删除")
	return nil
}

func (s *ReferenceService) ListSports(ctx context.Context) ([]*model.Sport, error) {
	return s.sports.ListSports(ctx)
}

func (s *ReferenceService) GetSport(ctx context.Context, id uint64) (*model.Sport, error) {
	sp, err := s.sports.GetSport(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "sport", id)
	}
	return sp, nil
}

func (s *ReferenceService) CreateSport(ctx context.Context, req SportRequest) (*model.Sport, error) {
	name, err := required("name", req.Name)
	if err != nil {
		return nil, err
	}
	sp := &model.Sport{Name: name, Icon: trimmed(req.Icon)}
	if err := s.sports.CreateSport(ctx, sp); err != nil {
		return nil, fmt.Errorf("创建大项失败: %w", err)
	}
	return sp, nil
}

func (s *ReferenceService) UpdateSport(ctx context.Context, id uint64, req SportRequest) (*model.Sport, error) {
	if _, err := s.GetSport(ctx, id); err != nil {
		return nil, err
	}
	name, err := required("name", req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.sports.UpdateSport(ctx, &model.Sport{ID: id, Name: name, Icon: trimmed(req.Icon)}); err != nil {
		return nil, fmt.Errorf("更新大项失败: %w", err)
	}
	return s.GetSport(ctx, id)
}

// DeleteSport 其下小项保留，sport_id 置空
func (s *ReferenceService) DeleteSport(ctx context.Context, id uint64) error {
	affected, err := s.sports.DeleteSport(ctx, id)
	if err != nil {
		return fmt.Errorf("删除大项失败: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Entity: "sport", ID: id}
	}
	s.logger.WithField("sport_id", id).Info("大项已删除，关联小项已解除")
	return nil
}

func (s *ReferenceService) CountCountries(ctx context.Context) (int64, error) {
	return s.countries.CountCountries(ctx)
}

func (s *ReferenceService) CountSports(ctx context.Context) (int64, error) {
	return s.sports.CountSports(ctx)
}
