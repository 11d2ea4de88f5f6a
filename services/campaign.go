package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"crowdfunding-etl/models"
	"crowdfunding-etl/utils"
)

// CampaignTables is everything derived from the crowdfunding sheet.
type CampaignTables struct {
	Categories    []models.Category
	Subcategories []models.Subcategory
	Campaigns     []models.Campaign
}

// CampaignTransformer turns raw crowdfunding rows into the normalized
// category, subcategory and campaign tables.
type CampaignTransformer struct {
	logger *utils.Logger
	loc    *time.Location
}

// NewCampaignTransformer creates a transformer that interprets launch and
// deadline epochs in loc. A nil loc means UTC.
func NewCampaignTransformer(logger *utils.Logger, loc *time.Location) *CampaignTransformer {
	if loc == nil {
		loc = time.UTC
	}
	return &CampaignTransformer{logger: logger, loc: loc}
}

// Run splits the combined category column, builds both dimensions from the
// split values and joins their keys back onto the fact rows.
func (t *CampaignTransformer) Run(raw []*models.RawCampaign) (*CampaignTables, error) {
	paths := make([]string, len(raw))
	for i, r := range raw {
		paths[i] = r.CategoryPath
	}

	cats, subs, err := SplitCategories(paths)
	if err != nil {
		return nil, fmt.Errorf("campaign: %w", err)
	}

	tables := &CampaignTables{
		Categories:    BuildCategories(cats),
		Subcategories: BuildSubcategories(subs),
	}
	t.logger.Info("[dimension] %d categories, %d subcategories",
		len(tables.Categories), len(tables.Subcategories))

	tables.Campaigns, err = t.Transform(raw, tables.Categories, tables.Subcategories)
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// Transform renames, retypes and left-joins every raw row. Rows whose
// category or subcategory is missing from the lookup tables are kept with a
// nil key.
func (t *CampaignTransformer) Transform(
	raw []*models.RawCampaign,
	cats []models.Category,
	subs []models.Subcategory,
) ([]models.Campaign, error) {
	catIdx := categoryIndex(cats)
	subIdx := subcategoryIndex(subs)

	result := make([]models.Campaign, 0, len(raw))
	var unresolved int

	for i, r := range raw {
		c, err := t.convert(r)
		if err != nil {
			return nil, fmt.Errorf("campaign: row %d (cf_id %s): %w", i+1, r.CfID, err)
		}

		category, subcategory, err := SplitCategory(r.CategoryPath)
		if err != nil {
			return nil, fmt.Errorf("campaign: row %d (cf_id %s): %w", i+1, r.CfID, err)
		}
		c.CategoryID = catIdx.lookup(category)
		c.SubcategoryID = subIdx.lookup(subcategory)

		if c.CategoryID == nil || c.SubcategoryID == nil {
			unresolved++
			t.logger.Warn("[campaign] cf_id %d has unresolved category %q / subcategory %q",
				c.CfID, category, subcategory)
		}

		result = append(result, c)
	}

	t.logger.Info("[campaign] Transformed %d rows (%d with unresolved references)",
		len(result), unresolved)
	return result, nil
}

func (t *CampaignTransformer) convert(r *models.RawCampaign) (models.Campaign, error) {
	var (
		c   models.Campaign
		err error
	)

	if c.CfID, err = parseInt("cf_id", r.CfID); err != nil {
		return c, err
	}
	if c.ContactID, err = parseInt("contact_id", r.ContactID); err != nil {
		return c, err
	}
	if c.BackersCount, err = parseInt("backers_count", r.BackersCount); err != nil {
		return c, err
	}
	if c.Goal, err = parseAmount("goal", r.Goal); err != nil {
		return c, err
	}
	if c.Pledged, err = parseAmount("pledged", r.Pledged); err != nil {
		return c, err
	}
	if c.LaunchDate, err = t.parseEpoch("launched_at", r.LaunchedAt); err != nil {
		return c, err
	}
	if c.EndDate, err = t.parseEpoch("deadline", r.Deadline); err != nil {
		return c, err
	}

	c.CompanyName = r.CompanyName
	c.Description = r.Blurb
	c.Country = r.Country
	c.Currency = r.Currency
	return c, nil
}

func (t *CampaignTransformer) parseEpoch(field, raw string) (models.Timestamp, error) {
	sec, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return models.Timestamp{}, fmt.Errorf("%s: %w", field, err)
	}
	return models.Timestamp(time.Unix(sec, 0).In(t.loc)), nil
}

func parseInt(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return n, nil
}

func parseAmount(field, raw string) (models.Amount, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return models.Amount(f), nil
}
