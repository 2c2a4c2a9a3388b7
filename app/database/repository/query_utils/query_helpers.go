package util

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"sort"
	"strings"

	pagingUtil "backend/insurance-platform/app/pkg/util/paging"

	"github.com/mitchellh/mapstructure"
	"github.com/uptrace/bun"
)

type DBTable interface {
	Alias() string
}

var ErrorMissingAlias = fmt.Errorf("no alias for query containing relations. Please add Alias() method to the entity")

// StructToQueries turns the non-empty fields of a filter struct into column
// conditions. Fields are named by their mapstructure tag; slices become IN lists.
func StructToQueries(input any, alias string) (conds []string, args []any, err error) {
	output := make(map[string]any)
	if err = mapstructure.Decode(input, &output); err != nil {
		return nil, nil, err
	}
	if alias != "" {
		alias += "."
	}

	keys := make([]string, 0, len(output))
	for key := range output {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := output[key]
		v := reflect.ValueOf(value)
		if v.Kind() == reflect.Array || v.Kind() == reflect.Slice {
			conds = append(conds, alias+key+" IN (?)")
			args = append(args, bun.In(value))
		} else {
			conds = append(conds, alias+key+" = ?")
			args = append(args, value)
		}
	}

	return conds, args, nil
}

func StructToConditions(input any, alias string) (condition string, args []any, err error) {
	conds, args, err := StructToQueries(input, alias)
	if err != nil {
		return "", nil, err
	}

	if len(conds) == 0 {
		return "", nil, nil
	}
	return strings.Join(conds, " AND "), args, nil
}

func FindOneEntityOrFailed[E DBTable, F any](
	ctx context.Context,
	db bun.IDB,
	filter F,
	selectors []string,
	relations ...string,
) (e E, err error) {
	entities, err := FindManyEntity[E, F](ctx, db, filter, selectors, pagingUtil.Page{Limit: 1}, relations...)
	if err != nil {
		return e, err
	}
	if len(entities) == 0 {
		return e, sql.ErrNoRows
	}
	return entities[0], nil
}

func FindManyEntity[E DBTable, F any](
	ctx context.Context,
	db bun.IDB,
	filter F,
	selectors []string,
	paging pagingUtil.Page,
	relations ...string,
) (entities []E, err error) {
	query := db.NewSelect().Model(&entities)
	query, err = BuildQueryConditions[E](query, filter, selectors, paging, relations...)
	if err != nil {
		return nil, err
	}
	err = query.Scan(ctx)
	return entities, SkipNotFound(err)
}

func FindManyEntityWithCount[E DBTable, F any](
	ctx context.Context,
	db bun.IDB,
	filter F,
	selectors []string,
	paging pagingUtil.Page,
	relations ...string,
) (entities []E, total int, err error) {
	query := db.NewSelect().Model(&entities)
	query, err = BuildQueryConditions[E](query, filter, selectors, paging, relations...)
	if err != nil {
		return nil, 0, err
	}
	total, err = query.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, SkipNotFound(err)
	}

	return entities, total, nil
}

// BuildQueryConditions applies filter, column selection, relations and paging.
// The entity alias prefixes every condition so relation joins stay unambiguous.
func BuildQueryConditions[E DBTable, F any](
	query *bun.SelectQuery,
	filter F,
	selectors []string,
	paging pagingUtil.Page,
	relations ...string,
) (*bun.SelectQuery, error) {
	var e E
	alias := e.Alias()
	if len(relations) > 0 && alias == "" {
		return nil, ErrorMissingAlias
	}
	paging.LoadDefault()
	condition, args, err := StructToConditions(filter, alias)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		query = query.Where(condition, args...)
	}
	for _, selector := range selectors {
		query = query.Column(selector)
	}
	for _, relation := range relations {
		query = query.Relation(relation)
	}

	query = query.Offset(paging.Offset).Limit(paging.Limit)
	if paging.OrderBy != "" {
		query = query.OrderExpr("? "+string(paging.SortBy), bun.Ident(paging.Column(alias)))
	}
	return query, nil
}

func UpdateBy[E any, F any, U any](
	ctx context.Context,
	db bun.IDB,
	filter F,
	data U,
) (int64, error) {
	query := db.NewUpdate().Model((*E)(nil))
	setQueries, args, err := StructToQueries(data, "")
	if err != nil {
		return 0, err
	}
	if len(setQueries) == 0 {
		return 0, nil
	}
	for i, setq := range setQueries {
		query = query.Set(setq, args[i])
	}

	condition, args, err := StructToConditions(filter, "")
	if err != nil {
		return 0, err
	}
	if len(args) > 0 {
		query = query.Where(condition, args...)
	}

	res, err := query.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func CheckExist[E any, F any](
	ctx context.Context,
	db bun.IDB,
	filter F,
) (bool, error) {
	condition, args, err := StructToConditions(filter, "")
	if err != nil {
		return false, err
	}

	query := db.NewSelect().Model((*E)(nil))
	if condition != "" {
		query = query.Where(condition, args...)
	}
	return query.Exists(ctx)
}
