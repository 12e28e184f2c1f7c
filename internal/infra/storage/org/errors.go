package org

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда у организации нет записи настроек
	ErrSettingsNotFound = errors.New("org.repository: settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("org.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("org.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("org.repository: failed to scan row")
)
