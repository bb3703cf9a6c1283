package model

// APIResponse 上游接口统一外层结构，data 的类型随接口变化
type APIResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message,omitempty"`
}

// VideoData 即上游返回的 aweme_detail，只取用到的字段
type VideoData struct {
	Desc     string `json:"desc"`
	CoverURL string `json:"cover_url,omitempty"`
	Video    *Video `json:"video,omitempty"`
}

type Video struct {
	DownloadAddr *URLList `json:"download_addr,omitempty"`
}

type URLList struct {
	URLList []string `json:"url_list"`
}

// HasVideo 是否存在下载地址对象
func (v *VideoData) HasVideo() bool {
	return v != nil && v.Video != nil && v.Video.DownloadAddr != nil
}

// VideoURL 返回第一个下载地址，没有时为空串
func (v *VideoData) VideoURL() string {
	if !v.HasVideo() || len(v.Video.DownloadAddr.URLList) == 0 {
		return ""
	}
	return v.Video.DownloadAddr.URLList[0]
}
