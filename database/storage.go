package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"douyin-downloader-go/logger"

	_ "modernc.org/sqlite"
)

// 全局数据库连接
var db *sql.DB

// InitDB 打开客户端状态库并建表
func InitDB(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("创建数据库目录失败: %w", err)
	}

	var err error
	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("打开数据库失败: %w", err)
	}

	pragmaStmts := []string{
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, stmt := range pragmaStmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("设置PRAGMA失败: %w", err)
		}
	}

	if err := createTables(); err != nil {
		return fmt.Errorf("创建表失败: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("数据库连接测试失败: %w", err)
	}

	logger.GetLogger().Debugf("数据库初始化成功: %s", dbPath)
	return nil
}

// CloseDB 关闭数据库连接
func CloseDB() {
	if db != nil {
		db.Close()
		db = nil
	}
}

// GetDB 获取数据库连接
func GetDB() *sql.DB {
	return db
}

// client_storage 对应浏览器 localStorage：字符串键值对，无过期
func createTables() error {
	storageTableSQL := `
	CREATE TABLE IF NOT EXISTS client_storage (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(storageTableSQL); err != nil {
		return fmt.Errorf("创建客户端存储表失败: %w", err)
	}
	return nil
}

// ClientStorage 基于全局连接的键值存储
type ClientStorage struct{}

// GetItem 读取键值，键不存在时 ok 为 false
func (ClientStorage) GetItem(key string) (value string, ok bool, err error) {
	if db == nil {
		return "", false, errors.New("数据库未初始化")
	}
	err = db.QueryRow(`SELECT value FROM client_storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("读取 %s 失败: %w", key, err)
	}
	return value, true, nil
}

// SetItem 写入或覆盖键值
func (ClientStorage) SetItem(key, value string) error {
	if db == nil {
		return errors.New("数据库未初始化")
	}
	_, err := db.Exec(`
		INSERT OR REPLACE INTO client_storage (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("写入 %s 失败: %w", key, err)
	}
	return nil
}

// RemoveItem 删除键，键不存在不算错误
func (ClientStorage) RemoveItem(key string) error {
	if db == nil {
		return errors.New("数据库未初始化")
	}
	if _, err := db.Exec(`DELETE FROM client_storage WHERE key = ?`, key); err != nil {
		return fmt.Errorf("删除 %s 失败: %w", key, err)
	}
	return nil
}
