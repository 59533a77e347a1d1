package service

import (
	"ecopulse_backend/internal/model"
	"ecopulse_backend/internal/repository"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type IndicatorService struct {
	IndicatorRepo *repository.IndicatorRepository
}

func NewIndicatorService(indicatorRepo *repository.IndicatorRepository) *IndicatorService {
	return &IndicatorService{IndicatorRepo: indicatorRepo}
}

type IndicatorInput struct {
	Code        string  `json:"code" binding:"required,max=50"`
	Name        string  `json:"name" binding:"required,max=150"`
	Category    string  `json:"category" binding:"required,max=50"`
	Description string  `json:"description"`
	Unit        string  `json:"unit" binding:"max=30"`
	Value       float64 `json:"value"`
	Trend       string  `json:"trend" binding:"omitempty,oneof=up down flat"`
	Weight      float64 `json:"weight"`
	LocationID  *uint   `json:"locationId"`
}

func (s *IndicatorService) Create(input IndicatorInput) (*model.Indicator, error) {
	if _, err := s.IndicatorRepo.FindByCode(input.Code); err == nil {
		return nil, fmt.Errorf("indicator code %s already exists", input.Code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	weight := input.Weight
	if weight <= 0 {
		weight = 1
	}

	indicator := &model.Indicator{
		Code:        input.Code,
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Unit:        input.Unit,
		Value:       input.Value,
		Trend:       input.Trend,
		Weight:      weight,
		LocationID:  input.LocationID,
	}
	if err := s.IndicatorRepo.Create(indicator); err != nil {
		return nil, err
	}
	return indicator, nil
}

func (s *IndicatorService) Get(id uint) (*model.Indicator, error) {
	return s.IndicatorRepo.FindByID(id)
}

func (s *IndicatorService) List(category string) ([]model.Indicator, error) {
	return s.IndicatorRepo.List(category)
}

func (s *IndicatorService) Update(id uint, input IndicatorInput) (*model.Indicator, error) {
	indicator, err := s.IndicatorRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	indicator.Name = input.Name
	indicator.Category = input.Category
	indicator.Description = input.Description
	indicator.Unit = input.Unit
	indicator.Value = input.Value
	indicator.Trend = input.Trend
	if input.Weight > 0 {
		indicator.Weight = input.Weight
	}
	indicator.LocationID = input.LocationID

	if err := s.IndicatorRepo.Update(indicator); err != nil {
		return nil, err
	}
	return indicator, nil
}

func (s *IndicatorService) Delete(id uint) error {
	return s.IndicatorRepo.Delete(id)
}

type RelationshipInput struct {
	ParentID uint               `json:"parentId" binding:"required"`
	ChildID  uint               `json:"childId" binding:"required"`
	Type     model.RelationType `json:"type" binding:"omitempty,oneof=contains influences"`
	Strength float64            `json:"strength"`
}

func (s *IndicatorService) Link(input RelationshipInput) (*model.IndicatorRelationship, error) {
	if input.ParentID == input.ChildID {
		return nil, fmt.Errorf("an indicator cannot relate to itself")
	}
	if _, err := s.IndicatorRepo.FindByID(input.ParentID); err != nil {
		return nil, err
	}
	if _, err := s.IndicatorRepo.FindByID(input.ChildID); err != nil {
		return nil, err
	}

	relType := input.Type
	if relType == "" {
		relType = model.RelationContains
	}
	strength := input.Strength
	if strength <= 0 {
		strength = 1
	}

	rel := &model.IndicatorRelationship{
		ParentID: input.ParentID,
		ChildID:  input.ChildID,
		Type:     relType,
		Strength: strength,
	}
	if err := s.IndicatorRepo.CreateRelationship(rel); err != nil {
		return nil, err
	}
	return rel, nil
}

func (s *IndicatorService) Unlink(id uint) error {
	return s.IndicatorRepo.DeleteRelationship(id)
}

// SunburstNode is one wedge of the hierarchy view. Value for a branch
// is the weighted sum of its children.
type SunburstNode struct {
	ID       uint           `json:"id"`
	Code     string         `json:"code"`
	Name     string         `json:"name"`
	Value    float64        `json:"value"`
	Trend    string         `json:"trend,omitempty"`
	Children []SunburstNode `json:"children,omitempty"`
}

// Sunburst builds the hierarchy from contains-edges. Categories form
// the synthetic top ring; indicators that are nobody's child sit
// directly under their category. Cycles are cut by never revisiting a
// node on the current path.
func (s *IndicatorService) Sunburst() ([]SunburstNode, error) {
	indicators, err := s.IndicatorRepo.List("")
	if err != nil {
		return nil, err
	}

	rels, err := s.IndicatorRepo.ListRelationships(model.RelationContains)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]model.Indicator, len(indicators))
	for _, ind := range indicators {
		byID[ind.ID] = ind
	}

	children := make(map[uint][]uint)
	isChild := make(map[uint]bool)
	for _, rel := range rels {
		children[rel.ParentID] = append(children[rel.ParentID], rel.ChildID)
		isChild[rel.ChildID] = true
	}

	var build func(id uint, path map[uint]bool) SunburstNode
	build = func(id uint, path map[uint]bool) SunburstNode {
		ind := byID[id]
		node := SunburstNode{
			ID:    ind.ID,
			Code:  ind.Code,
			Name:  ind.Name,
			Value: ind.Value * ind.Weight,
			Trend: ind.Trend,
		}

		path[id] = true
		total := 0.0
		for _, childID := range children[id] {
			if path[childID] {
				continue
			}
			if _, ok := byID[childID]; !ok {
				continue
			}
			child := build(childID, path)
			node.Children = append(node.Children, child)
			total += child.Value
		}
		delete(path, id)

		if len(node.Children) > 0 {
			node.Value = total
		}
		return node
	}

	// Roots per category keep insertion order of the sorted list.
	categoryOrder := []string{}
	byCategory := make(map[string][]SunburstNode)
	for _, ind := range indicators {
		if isChild[ind.ID] {
			continue
		}
		if _, seen := byCategory[ind.Category]; !seen {
			categoryOrder = append(categoryOrder, ind.Category)
		}
		byCategory[ind.Category] = append(byCategory[ind.Category], build(ind.ID, map[uint]bool{}))
	}

	out := make([]SunburstNode, 0, len(categoryOrder))
	for i, category := range categoryOrder {
		ring := SunburstNode{
			ID:       uint(i + 1),
			Code:     "cat:" + category,
			Name:     category,
			Children: byCategory[category],
		}
		for _, child := range ring.Children {
			ring.Value += child.Value
		}
		out = append(out, ring)
	}
	return out, nil
}
