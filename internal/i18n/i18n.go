// Package i18n holds the user-facing strings of the client and the export.
package i18n

import "fmt"

type Locale string

const (
	Japanese Locale = "ja"
	English  Locale = "en"
)

// Message keys.
const (
	TaskCreated          = "task.created"
	TaskCreateFailed     = "task.create_failed"
	TaskUpdated          = "task.updated"
	TaskUpdateFailed     = "task.update_failed"
	TaskDeleted          = "task.deleted"
	TaskDeleteFailed     = "task.delete_failed"
	DependencyCreated    = "dependency.created"
	DependencyFailed     = "dependency.create_failed"
	DependencyDuplicate  = "dependency.duplicate"
	DependencySelf       = "dependency.self"
	DependencyDeleted    = "dependency.deleted"
	DependencyDelFailed  = "dependency.delete_failed"
	DependencyConfirmDel = "dependency.confirm_delete"
	ProjectCreated       = "project.created"
	ProjectCreateFailed  = "project.create_failed"
	ProjectUpdated       = "project.updated"
	ProjectUpdateFailed  = "project.update_failed"
	ProjectDeleted       = "project.deleted"
	ProjectDeleteFailed  = "project.delete_failed"
	ProjectConfirmDel    = "project.confirm_delete"
	TaskConfirmDel       = "task.confirm_delete"
	GanttInitFailed      = "gantt.init_failed"
	GanttUpdateFailed    = "gantt.update_failed"
	GanttEmpty           = "gantt.empty"
	GanttLoadFailed      = "gantt.load_failed"
	CheckInput           = "form.check_input"
	Required             = "form.required"
	InvalidEmail         = "form.invalid_email"
	InvalidChoice        = "form.invalid_choice"
	OutOfRange           = "form.out_of_range"
	ExportDone           = "export.done"
	ExportFailed         = "export.failed"
	UserCreatedDemo      = "user.created_demo"
	UserUpdatedDemo      = "user.updated_demo"
	UserDeletedDemo      = "user.deleted_demo"
	LoginFailed          = "auth.login_failed"
	UnknownError         = "error.unknown"
	GanttColName         = "gantt.col.name"
	GanttColType         = "gantt.col.type"
	GanttColDuration     = "gantt.col.duration"
	GanttColStart        = "gantt.col.start"
	GanttColEnd          = "gantt.col.end"
	GanttMonthFormat     = "gantt.scale.month"
	GanttCreateFirst     = "gantt.create_first"
	InvalidDate          = "form.invalid_date"
	Loading              = "view.loading"
	NoData               = "view.no_data"
	UserConfirmDel       = "user.confirm_delete"
	LoginDone            = "auth.login_done"
	LogoutDone           = "auth.logout_done"
)

var catalog = map[Locale]map[string]string{
	Japanese: {
		TaskCreated:          "タスクを作成しました",
		TaskCreateFailed:     "タスクの作成に失敗しました",
		TaskUpdated:          "タスクを更新しました",
		TaskUpdateFailed:     "タスクの更新に失敗しました",
		TaskDeleted:          "タスクを削除しました",
		TaskDeleteFailed:     "タスクの削除に失敗しました",
		DependencyCreated:    "依存関係を作成しました",
		DependencyFailed:     "依存関係の作成に失敗しました",
		DependencyDuplicate:  "この依存関係は既に存在します",
		DependencySelf:       "同じタスクに依存関係を設定することはできません",
		DependencyDeleted:    "依存関係を削除しました",
		DependencyDelFailed:  "依存関係の削除に失敗しました",
		DependencyConfirmDel: "この依存関係を削除しますか？",
		ProjectCreated:       "プロジェクトを作成しました",
		ProjectCreateFailed:  "プロジェクトの作成に失敗しました",
		ProjectUpdated:       "プロジェクトを更新しました",
		ProjectUpdateFailed:  "プロジェクトの更新に失敗しました",
		ProjectDeleted:       "プロジェクトを削除しました",
		ProjectDeleteFailed:  "プロジェクトの削除に失敗しました",
		ProjectConfirmDel:    "プロジェクトを削除しますか？",
		TaskConfirmDel:       "タスクを削除しますか？",
		GanttInitFailed:      "ガントチャートの初期化に失敗しました",
		GanttUpdateFailed:    "ガントチャートからのタスク更新に失敗しました",
		GanttEmpty:           "表示するタスクがありません",
		GanttLoadFailed:      "ガントチャートの読み込みに失敗しました",
		CheckInput:           "入力値を確認してください",
		Required:             "入力してください",
		InvalidEmail:         "有効なメールアドレスを入力してください",
		InvalidChoice:        "選択肢から選んでください",
		OutOfRange:           "範囲外の値です",
		ExportDone:           "ファイルをダウンロードしました",
		ExportFailed:         "エクスポートに失敗しました",
		UserCreatedDemo:      "ユーザーを作成しました（デモ）",
		UserUpdatedDemo:      "ユーザーを更新しました（デモ）",
		UserDeletedDemo:      "ユーザーを削除しました（デモ）",
		LoginFailed:          "ログインに失敗しました",
		UnknownError:         "不明なエラー",
		GanttColName:         "タスク名",
		GanttColType:         "タイプ",
		GanttColDuration:     "期間",
		GanttColStart:        "開始日",
		GanttColEnd:          "終了日",
		GanttMonthFormat:     "%Y年%m月",
		GanttCreateFirst:     "まずはタスクを作成してください",
		InvalidDate:          "有効な日付を入力してください",
		Loading:              "読み込み中...",
		NoData:               "データがありません",
		UserConfirmDel:       "ユーザーを削除しますか？",
		LoginDone:            "ログインしました",
		LogoutDone:           "ログアウトしました",
	},
	English: {
		TaskCreated:          "Task created",
		TaskCreateFailed:     "Failed to create task",
		TaskUpdated:          "Task updated",
		TaskUpdateFailed:     "Failed to update task",
		TaskDeleted:          "Task deleted",
		TaskDeleteFailed:     "Failed to delete task",
		DependencyCreated:    "Dependency created",
		DependencyFailed:     "Failed to create dependency",
		DependencyDuplicate:  "This dependency already exists",
		DependencySelf:       "A task cannot depend on itself",
		DependencyDeleted:    "Dependency deleted",
		DependencyDelFailed:  "Failed to delete dependency",
		DependencyConfirmDel: "Delete this dependency?",
		ProjectCreated:       "Project created",
		ProjectCreateFailed:  "Failed to create project",
		ProjectUpdated:       "Project updated",
		ProjectUpdateFailed:  "Failed to update project",
		ProjectDeleted:       "Project deleted",
		ProjectDeleteFailed:  "Failed to delete project",
		ProjectConfirmDel:    "Delete this project?",
		TaskConfirmDel:       "Delete this task?",
		GanttInitFailed:      "Failed to initialize the Gantt chart",
		GanttUpdateFailed:    "Failed to update the task from the Gantt chart",
		GanttEmpty:           "No tasks to display",
		GanttLoadFailed:      "Failed to load the Gantt chart",
		CheckInput:           "Please check the input",
		Required:             "Required",
		InvalidEmail:         "Enter a valid email address",
		InvalidChoice:        "Choose one of the options",
		OutOfRange:           "Value out of range",
		ExportDone:           "File downloaded",
		ExportFailed:         "Export failed",
		UserCreatedDemo:      "User created (demo)",
		UserUpdatedDemo:      "User updated (demo)",
		UserDeletedDemo:      "User deleted (demo)",
		LoginFailed:          "Login failed",
		UnknownError:         "Unknown error",
		GanttColName:         "Task",
		GanttColType:         "Type",
		GanttColDuration:     "Days",
		GanttColStart:        "Start",
		GanttColEnd:          "End",
		GanttMonthFormat:     "%F %Y",
		GanttCreateFirst:     "Create a task first",
		InvalidDate:          "Enter a valid date",
		Loading:              "Loading...",
		NoData:               "No data",
		UserConfirmDel:       "Delete this user?",
		LoginDone:            "Logged in",
		LogoutDone:           "Logged out",
	},
}

var labels = map[Locale]map[string]string{
	Japanese: {
		"planning": "計画中", "active": "進行中", "on_hold": "保留", "completed": "完了", "cancelled": "キャンセル",
		"not_started": "未開始", "in_progress": "進行中",
		"phase": "フェーズ", "task": "タスク", "detail_task": "詳細タスク",
		"low": "低", "medium": "中", "high": "高", "critical": "緊急",
		"system_admin": "システム管理者", "project_owner": "プロジェクトオーナー",
		"project_manager": "プロジェクトマネージャー", "team_member": "チームメンバー", "viewer": "閲覧者",
		"finish_to_start": "終了→開始", "start_to_start": "開始→開始",
		"finish_to_finish": "終了→終了", "start_to_finish": "開始→終了",
		"col.id": "ID", "col.project": "プロジェクト名", "col.status": "ステータス", "col.description": "説明",
		"col.created": "作成日", "col.task": "タスク名", "col.type": "タイプ", "col.priority": "優先度",
		"col.hours": "予定工数", "col.progress": "進捗", "col.start": "開始日", "col.end": "終了日",
		"col.predecessor": "先行タスク", "col.successor": "後続タスク", "col.dep_type": "依存タイプ", "col.lag": "ラグ",
		"col.username": "ユーザー名", "col.full_name": "フルネーム", "col.email": "メールアドレス", "col.role": "役割",
		"col.tasks": "タスク数", "col.completed": "完了タスク",
		"tab.tasks": "タスク一覧", "tab.dependencies": "依存関係", "tab.gantt": "ガントチャート",
		"user.active": "有効", "user.inactive": "無効", "unit.days": "日", "unit.hours": "時間",
		"stats.projects": "総プロジェクト数", "stats.active": "進行中プロジェクト", "stats.completed_projects": "完了プロジェクト",
		"stats.tasks": "総タスク数", "stats.completed_tasks": "完了タスク", "stats.overdue": "期限切れタスク",
		"title.projects": "プロジェクト一覧", "title.reports": "レポート", "title.users": "ユーザー管理",
		"col.actual_hours": "実績工数", "col.parent": "親タスクID", "col.assignee": "担当者ID", "col.password": "パスワード",
		"help.detail": "tab/1-3: タブ切替  r: 再読込  q: 終了",
	},
	English: {
		"planning": "Planning", "active": "Active", "on_hold": "On hold", "completed": "Completed", "cancelled": "Cancelled",
		"not_started": "Not started", "in_progress": "In progress",
		"phase": "Phase", "task": "Task", "detail_task": "Detail task",
		"low": "Low", "medium": "Medium", "high": "High", "critical": "Critical",
		"system_admin": "System admin", "project_owner": "Project owner",
		"project_manager": "Project manager", "team_member": "Team member", "viewer": "Viewer",
		"finish_to_start": "Finish to start", "start_to_start": "Start to start",
		"finish_to_finish": "Finish to finish", "start_to_finish": "Start to finish",
		"col.id": "ID", "col.project": "Project", "col.status": "Status", "col.description": "Description",
		"col.created": "Created", "col.task": "Task", "col.type": "Type", "col.priority": "Priority",
		"col.hours": "Estimate", "col.progress": "Progress", "col.start": "Start", "col.end": "End",
		"col.predecessor": "Predecessor", "col.successor": "Successor", "col.dep_type": "Type", "col.lag": "Lag",
		"col.username": "Username", "col.full_name": "Full name", "col.email": "Email", "col.role": "Role",
		"col.tasks": "Tasks", "col.completed": "Completed",
		"tab.tasks": "Tasks", "tab.dependencies": "Dependencies", "tab.gantt": "Gantt",
		"user.active": "Active", "user.inactive": "Inactive", "unit.days": "d", "unit.hours": "h",
		"stats.projects": "Projects", "stats.active": "Active projects", "stats.completed_projects": "Completed projects",
		"stats.tasks": "Tasks", "stats.completed_tasks": "Completed tasks", "stats.overdue": "Overdue tasks",
		"title.projects": "Projects", "title.reports": "Reports", "title.users": "Users",
		"col.actual_hours": "Actual", "col.parent": "Parent task ID", "col.assignee": "Assignee ID", "col.password": "Password",
		"help.detail": "tab/1-3: switch  r: reload  q: quit",
	},
}

// Parse maps a config value to a Locale, defaulting to Japanese.
func Parse(s string) Locale {
	if Locale(s) == English {
		return English
	}
	return Japanese
}

// T returns the message for key, falling back to Japanese and then the key itself.
func (l Locale) T(key string) string {
	if m, ok := catalog[l][key]; ok {
		return m
	}
	if m, ok := catalog[Japanese][key]; ok {
		return m
	}
	return key
}

// Tf joins a message with a detail, the way error notifications read.
func (l Locale) Tf(key, detail string) string {
	if detail == "" {
		return l.T(key)
	}
	return fmt.Sprintf("%s: %s", l.T(key), detail)
}

// Label returns the display label of an enum value.
func (l Locale) Label(value string) string {
	if s, ok := labels[l][value]; ok {
		return s
	}
	return value
}
