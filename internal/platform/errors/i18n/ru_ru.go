package i18n

var messagesRuRU = map[Code]string{
	CodeUnknown:                "Что-то пошло не так. Попробуйте ещё раз.",
	CodeGameNotFound:           "Игра {{.game_id}} не найдена.",
	CodeGameCreateFailed:       "Не удалось создать игру. Попробуйте ещё раз.",
	CodeGameJoinRejected:       "Не удалось присоединиться к игре. Возможно, игра уже занята или началась.",
	CodeGameNotParticipant:     "Вы не являетесь участником этой игры.",
	CodePlacementInvalid:       "Неверная расстановка кораблей: {{.reason}}.",
	CodeShotOutOfTurn:          "Сейчас не ваш ход.",
	CodeShotInvalidPosition:    "Позиция ({{.row}}, {{.col}}) находится за пределами поля.",
	CodeShotAlreadyTaken:       "Вы уже стреляли в ({{.row}}, {{.col}}).",
	CodePlayerNameEmpty:        "Требуется имя игрока.",
	CodeUserAlreadyExists:      "Пользователь с таким именем уже существует.",
	CodeUserInvalidCredentials: "Неверное имя пользователя или пароль.",
	CodeUserTokenInvalid:       "Сессия недействительна. Войдите снова.",
	CodeNotFound:               "Запрошенная запись не найдена.",

	LabelVictory: "Победа",
	LabelDefeat:  "Поражение",
}
