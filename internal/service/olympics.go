package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"OlympicsHub/internal/model"
	"OlympicsHub/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// activateAttempts 激活三步写整体重放次数
const activateAttempts = 3

// OlympicsService 奥运会届次维护与“当前届”解析
type OlympicsService struct {
	repo     repository.OlympicsRepository
	settings repository.SettingRepository
	logger   *logrus.Logger
}

func NewOlympicsService(repo repository.OlympicsRepository, settings repository.SettingRepository, logger *logrus.Logger) *OlympicsService {
	return &OlympicsService{repo: repo, settings: settings, logger: logger}
}

// OlympicsRequest 新建/编辑届次；Type 缺省为 summer
type OlympicsRequest struct {
	Name      string  `json:"name"`
	Year      int     `json:"year"`
	Type      string  `json:"type"`
	City      *string `json:"city"`
	Country   *string `json:"country"`
	LogoURL   *string `json:"logo_url"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

func (req OlympicsRequest) toModel() (*model.Olympics, error) {
	name, err := required("name", req.Name)
	if err != nil {
		return nil, err
	}
	if req.Year <= 0 {
		return nil, invalid("year", "must be a positive year")
	}
	typ := model.OlympicsSummer
	if req.Type != "" {
		typ = model.OlympicsType(req.Type)
	}
	if !typ.Valid() {
		return nil, invalid("type", "must be one of summer, winter, youth, paralympics")
	}
	start, err := parseDay("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDay("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, invalid("end_date", "must not precede start_date")
	}
	return &model.Olympics{
		Name:      name,
		Year:      req.Year,
		Type:      typ,
		City:      trimmed(req.City),
		Country:   trimmed(req.Country),
		LogoURL:   trimmed(req.LogoURL),
		StartDate: toDate(start),
		EndDate:   toDate(end),
	}, nil
}

func (s *OlympicsService) ListOlympics(ctx context.Context) ([]*model.Olympics, error) {
	return s.repo.ListOlympics(ctx)
}

func (s *OlympicsService) GetOlympics(ctx context.Context, id uint64) (*model.Olympics, error) {
	o, err := s.repo.GetOlympics(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "olympics", id)
	}
	return o, nil
}

func (s *OlympicsService) CreateOlympics(ctx context.Context, req OlympicsRequest) (*model.Olympics, error) {
	o, err := req.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateOlympics(ctx, o); err != nil {
		return nil, fmt.Errorf("创建奥运会失败: %w", err)
	}
	return o, nil
}

func (s *OlympicsService) UpdateOlympics(ctx context.Context, id uint64, req OlympicsRequest) (*model.Olympics, error) {
	if _, err := s.GetOlympics(ctx, id); err != nil {
		return nil, err
	}
	o, err := req.toModel()
	if err != nil {
		return nil, err
	}
	o.ID = id
	if err := s.repo.UpdateOlympics(ctx, o); err != nil {
		return nil, fmt.Errorf("更新奥运会失败: %w", err)
	}
	return s.GetOlympics(ctx, id)
}

// DeleteOlympics 级联删除其全部小项
func (s *OlympicsService) DeleteOlympics(ctx context.Context, id uint64) error {
	affected, err := s.repo.DeleteOlympics(ctx, id)
	if err != nil {
		return fmt.Errorf("删除奥运会失败: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Entity: "olympics", ID: id}
	}
	s.logger.WithField("olympics_id", id).Info("奥运会及其小项已删除")
	return nil
}

// Activate 设为当前届；三步写在一个事务里，失败整体重放
func (s *OlympicsService) Activate(ctx context.Context, id uint64) (*model.Olympics, error) {
	if _, err := s.GetOlympics(ctx, id); err != nil {
		return nil, err
	}

	var err error
	for attempt := 1; attempt <= activateAttempts; attempt++ {
		err = s.repo.Activate(ctx, id)
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "olympics", ID: id}
		}
		s.logger.WithError(err).WithFields(logrus.Fields{
			"olympics_id": id,
			"attempt":     attempt,
		}).Warn("激活奥运会失败，准备重试")
		if attempt == activateAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("激活奥运会失败: %w", err)
	}

	s.logger.WithField("olympics_id", id).Info("当前届已切换")
	return s.GetOlympics(ctx, id)
}

// ResolveActive 当前届解析唯一入口：显式参数 → active_olympics_id 设置 → is_active 行 → nil
func (s *OlympicsService) ResolveActive(ctx context.Context, explicit *uint64) (*uint64, error) {
	if explicit != nil {
		return explicit, nil
	}

	setting, err := s.settings.GetSetting(ctx, model.SettingActiveOlympicsID)
	switch {
	case err == nil:
		if id, perr := strconv.ParseUint(setting.Value, 10, 64); perr == nil {
			if _, gerr := s.repo.GetOlympics(ctx, id); gerr == nil {
				return &id, nil
			} else if !errors.Is(gerr, gorm.ErrRecordNotFound) {
				return nil, gerr
			}
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("读取 active_olympics_id 失败: %w", err)
	}

	flagged, err := s.repo.GetFlaggedActive(ctx)
	if err == nil {
		return &flagged.ID, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}

// GetActive 解析并加载当前届；没有时返回 nil
func (s *OlympicsService) GetActive(ctx context.Context) (*model.Olympics, error) {
	id, err := s.ResolveActive(ctx, nil)
	if err != nil || id == nil {
		return nil, err
	}
	return s.GetOlympics(ctx, *id)
}

// Scope 读接口的届次范围
type Scope struct {
	OlympicsID *uint64
	// All 显式要求跨全部届次
	All bool
}

// Empty 未解析到任何届次：读接口应返回空结果而不是报错
func (sc Scope) Empty() bool { return !sc.All && sc.OlympicsID == nil }

// Filter 传给仓储层的过滤条件，nil 表示不限届次
func (sc Scope) Filter() *uint64 {
	if sc.All {
		return nil
	}
	return sc.OlympicsID
}

// GlobalScope 跨全部届次
var GlobalScope = Scope{All: true}

// ResolveScope 按 ResolveActive 的优先级得到读范围；all=true 时不限届次
func (s *OlympicsService) ResolveScope(ctx context.Context, explicit *uint64, all bool) (Scope, error) {
	if all {
		return GlobalScope, nil
	}
	id, err := s.ResolveActive(ctx, explicit)
	if err != nil {
		return Scope{}, err
	}
	return Scope{OlympicsID: id}, nil
}
