package ai

import "fmt"

// MaterialPrompt asks the backend to extract objects and text from one site
// photo, JSON only, no interpretation.
func MaterialPrompt(file string) string {
	return fmt.Sprintf(`次の画像について、写っている物体と文字情報だけを抽出せよ。推測や分類は不要。Output ONLY JSON object: {"file":%[1]q,"objects":[{"label":"...","box":[0,0,0,0],"area":0}],"board_text":"","other_text":"","notes":""}
対象ファイル: %[1]s
objects: 写っている物体のリスト。labelは短い名称（例: ローラー, アスファルト, 作業員, 看板）、boxは正規化座標[x1,y1,x2,y2]、areaは画面に占める割合
board_text: 黒板があればその文字をそのまま
other_text: 黒板以外の文字（標識、銘板、番号など）
notes: 事実ベースの補足（任意）`, file)
}

// GroupPrompt asks the backend to classify one machine photo: overall view,
// inspection sticker, emission/noise sticker, or number plate.
func GroupPrompt(file string) string {
	return fmt.Sprintf(`工事現場の使用機械写真を分類せよ。Output ONLY JSON object: {"file":%[1]q,"role":"?","machine_type":"?","machine_id":"?","has_board":false,"detected_text":"","description":""}
対象ファイル: %[1]s
role: "機械全景" or "特定自主検査証票" or "排ガス対策型・低騒音型機械証票" or "ナンバープレート"
machine_type: 機械の種類(例: タイヤローラー, アスファルトフィニッシャー, バックホウ)
machine_id: 型式番号(例: TZ-703, HA60C-2)。証票や銘板から読み取れ。同一機械の写真は同じmachine_idにせよ。
has_board: 黒板が写っているか
detected_text: 読み取れた文字をそのまま
description: 事実ベースの短い説明`, file)
}
