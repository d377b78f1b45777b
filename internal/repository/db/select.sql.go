package db

import "context"

const listNotices = `-- name: ListNotices :many
SELECT id, title, author, date, views, category, content
FROM notices
ORDER BY id
`

func (q *Queries) ListNotices(ctx context.Context) ([]Notice, error) {
	rows, err := q.db.Query(ctx, listNotices)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Notice
	for rows.Next() {
		var i Notice
		if err := rows.Scan(&i.ID, &i.Title, &i.Author, &i.Date, &i.Views, &i.Category, &i.Content); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listEquipment = `-- name: ListEquipment :many
SELECT id, name, status, usage, remaining, last_check
FROM equipment
ORDER BY id
`

func (q *Queries) ListEquipment(ctx context.Context) ([]Equipment, error) {
	rows, err := q.db.Query(ctx, listEquipment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Equipment
	for rows.Next() {
		var i Equipment
		if err := rows.Scan(&i.ID, &i.Name, &i.Status, &i.Usage, &i.Remaining, &i.LastCheck); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listParts = `-- name: ListParts :many
SELECT id, name, part_no, equipment, type, unit_price, total_qty, used_qty, remain_qty, first_ship_date
FROM parts
ORDER BY id
`

func (q *Queries) ListParts(ctx context.Context) ([]Part, error) {
	rows, err := q.db.Query(ctx, listParts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Part
	for rows.Next() {
		var i Part
		if err := rows.Scan(
			&i.ID, &i.Name, &i.PartNo, &i.Equipment, &i.Type,
			&i.UnitPrice, &i.TotalQty, &i.UsedQty, &i.RemainQty, &i.FirstShipDate,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listInspectionLogs = `-- name: ListInspectionLogs :many
SELECT id, equipment, start_date, institution, "user", use_start_date, use_end_date, registrant, purpose
FROM inspection_logs
ORDER BY id
`

func (q *Queries) ListInspectionLogs(ctx context.Context) ([]InspectionLog, error) {
	rows, err := q.db.Query(ctx, listInspectionLogs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []InspectionLog
	for rows.Next() {
		var i InspectionLog
		if err := rows.Scan(
			&i.ID, &i.Equipment, &i.StartDate, &i.Institution, &i.User,
			&i.UseStartDate, &i.UseEndDate, &i.Registrant, &i.Purpose,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listOperationLogs = `-- name: ListOperationLogs :many
SELECT id, equipment, start_date, end_date, use_time, activity, actual_user
FROM operation_logs
ORDER BY id
`

func (q *Queries) ListOperationLogs(ctx context.Context) ([]OperationLog, error) {
	rows, err := q.db.Query(ctx, listOperationLogs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OperationLog
	for rows.Next() {
		var i OperationLog
		if err := rows.Scan(&i.ID, &i.Equipment, &i.StartDate, &i.EndDate, &i.UseTime, &i.Activity, &i.ActualUser); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
